// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strings"
	"time"

	"github.com/danielhkuo/diddle/models"
)

const dateLayout = "2006-01-02"

// Accepted layouts for a choice bound, besides a bare date
var datetimeLayouts = []string{
	models.DateTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseChoiceTime reads a choice bound in local time. A bare date means the
// start of the day for a start bound and 23:59 for an end bound.
func parseChoiceTime(field, value string, isEnd bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	label := "Start"
	if isEnd {
		label = "End"
	}

	if day, err := time.ParseInLocation(dateLayout, value, time.Local); err == nil {
		if isEnd {
			return endOfDay(day), nil
		}
		return day, nil
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, models.NewValidationError(field, "%s must look like YYYY-MM-DD or YYYY-MM-DD HH:MM", label)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, t.Location())
}

// choiceBounds parses and checks a choice. Whole-day polls widen both bounds
// to full days.
func choiceBounds(req models.AddChoiceRequest, wholeDay bool) (time.Time, time.Time, error) {
	start, err := parseChoiceTime("start_datetime", req.StartDatetime, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseChoiceTime("end_datetime", req.EndDatetime, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if wholeDay {
		start, end = startOfDay(start), endOfDay(end)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, models.NewValidationError("end_datetime", "End must not be before the start")
	}
	return start, end, nil
}
