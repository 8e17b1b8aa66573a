// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally ranks the choices of a poll by yes votes.
package tally

import "github.com/danielhkuo/diddle/models"

// minWinningVotes keeps all-zero polls from marking every choice as winning.
const minWinningVotes = 1

// Counts returns the number of yes votes per choice.
func Counts(poll models.Poll) map[models.ID]int {
	counts := make(map[models.ID]int, len(poll.Choices))
	for _, c := range poll.Choices {
		counts[c.ID] = c.YesCount()
	}
	return counts
}

// MostVoted returns every choice whose yes count equals the poll maximum.
// Ties are kept. If no choice has a yes vote the set is empty.
func MostVoted(poll models.Poll) map[models.ID]struct{} {
	best := minWinningVotes
	ids := make(map[models.ID]struct{})
	for _, c := range poll.Choices {
		n := c.YesCount()
		switch {
		case n > best:
			best = n
			ids = map[models.ID]struct{}{c.ID: {}}
		case n == best:
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}

// Summary lists each choice in poll order with its count and whether it is
// in the most-voted set. The second value holds the most-voted ids in the
// same order.
func Summary(poll models.Poll) ([]models.ChoiceSummary, []models.ID) {
	most := MostVoted(poll)
	rows := make([]models.ChoiceSummary, 0, len(poll.Choices))
	winners := []models.ID{}
	for _, c := range poll.Choices {
		_, top := most[c.ID]
		rows = append(rows, models.ChoiceSummary{
			ChoiceID:  c.ID,
			YesCount:  c.YesCount(),
			MostVoted: top,
		})
		if top {
			winners = append(winners, c.ID)
		}
	}
	return rows, winners
}
