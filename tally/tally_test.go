package tally

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/diddle/models"
)

// pollWithCounts builds a poll whose choice i has counts[i] yes votes and
// one no vote.
func pollWithCounts(counts ...int) models.Poll {
	p := models.Poll{ID: "p"}
	for i, n := range counts {
		c := models.Choice{ID: models.ID(fmt.Sprintf("choice_%c", 'a'+i))}
		for v := 0; v < n; v++ {
			c.Votes = append(c.Votes, models.Vote{VoterName: fmt.Sprintf("yes%d", v), Value: 1})
		}
		c.Votes = append(c.Votes, models.Vote{VoterName: "nobody", Value: 0})
		p.Choices = append(p.Choices, c)
	}
	return p
}

func set(ids ...models.ID) map[models.ID]struct{} {
	out := make(map[models.ID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func TestMostVoted(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   map[models.ID]struct{}
	}{
		{"tie at the top", []int{3, 5, 5, 2}, set("choice_b", "choice_c")},
		{"all zero", []int{0, 0, 0}, set()},
		{"single winner", []int{1, 0, 4}, set("choice_c")},
		{"one vote each", []int{1, 1}, set("choice_a", "choice_b")},
		{"no choices", nil, set()},
		{"zero before winner", []int{0, 2}, set("choice_b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MostVoted(pollWithCounts(tt.counts...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MostVoted() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	got := Counts(pollWithCounts(2, 0))
	want := map[models.ID]int{"choice_a": 2, "choice_b": 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	rows, winners := Summary(pollWithCounts(3, 5, 5, 2))

	want := []models.ChoiceSummary{
		{ChoiceID: "choice_a", YesCount: 3},
		{ChoiceID: "choice_b", YesCount: 5, MostVoted: true},
		{ChoiceID: "choice_c", YesCount: 5, MostVoted: true},
		{ChoiceID: "choice_d", YesCount: 2},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Summary() rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.ID{"choice_b", "choice_c"}, winners); diff != "" {
		t.Errorf("Summary() winners mismatch (-want +got):\n%s", diff)
	}
}
