// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release

import (
	"fmt"
	"time"

	"github.com/shinkan-app/shinkan/internal/platform/apperr"
	"github.com/shinkan-app/shinkan/internal/platform/constants"
)

// # Calendar Windows

// Window is an inclusive date range aligned to calendar-month boundaries.
type Window struct {
	// First is the first day of the month at midnight UTC.
	First time.Time
	// Last is the last day of the month at midnight UTC.
	Last time.Time
}

// MonthWindow is a [Window] tagged with its YYYY-MM grouping key.
type MonthWindow struct {
	// Key is the deterministic YYYY-MM identifier. It is both the response
	// grouping key and a cache key segment, so its format is frozen.
	Key string
	Window
}

// MonthKey formats a year/month pair as the canonical YYYY-MM identifier.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// CurrentMonthWindow returns the first and last calendar day of today's month.
//
// The day count (28-31, leap years included) is resolved by normalizing
// day zero of the following month.
func CurrentMonthWindow(today time.Time) Window {
	year, month, _ := today.Date()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of month+1 normalizes to the last day of this month.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	return Window{First: first, Last: last}
}

// UpcomingWindows returns one [MonthWindow] per month for monthCount
// consecutive months starting the month after today's month.
//
// Month and year roll over past December (month 13 becomes January of the
// next year). monthCount outside [1, 4] is rejected with a validation error.
func UpcomingWindows(today time.Time, monthCount int) ([]MonthWindow, error) {
	if monthCount < constants.MinUpcomingMonths || monthCount > constants.MaxUpcomingMonths {
		return nil, apperr.ValidationError("Invalid months parameter", apperr.FieldError{
			Field: "months",
			Message: fmt.Sprintf("Must be between %d and %d",
				constants.MinUpcomingMonths, constants.MaxUpcomingMonths),
		})
	}

	year, month, _ := today.Date()
	windows := make([]MonthWindow, 0, monthCount)

	for offset := 1; offset <= monthCount; offset++ {
		// time.Date normalizes out-of-range months, carrying into the year.
		first := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(year, month+time.Month(offset)+1, 0, 0, 0, 0, 0, time.UTC)

		windows = append(windows, MonthWindow{
			Key:    MonthKey(first.Year(), first.Month()),
			Window: Window{First: first, Last: last},
		})
	}

	return windows, nil
}
