// Package schedule holds the clinic opening hours. Everything here is pure
// calendar arithmetic so it can gate requests without touching the database.
package schedule

import (
	"fmt"
	"time"
)

// OpeningHour is the first bookable hour on any open day.
const OpeningHour = 9

// closingHour returns the last bookable hour for the given weekday. The
// closing hour itself is bookable only at minute 0.
func closingHour(day time.Weekday) (int, bool) {
	switch day {
	case time.Monday, time.Tuesday, time.Thursday:
		return 14, true
	case time.Wednesday:
		return 13, true
	case time.Friday:
		return 11, true
	default:
		return 0, false
	}
}

// IsOpen reports whether hour:minute on the given weekday falls inside an
// open slot. Local calendar time, no timezone handling.
func IsOpen(day time.Weekday, hour, minute int) bool {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return false
	}
	closing, open := closingHour(day)
	if !open {
		return false
	}
	if hour < OpeningHour || hour > closing {
		return false
	}
	if hour == closing {
		return minute == 0
	}
	return true
}

// IsOpenAt is the string-facing variant used by the API: date "2006-01-02",
// clock "15:04".
func IsOpenAt(date, clock string) (bool, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return false, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return IsOpen(d.Weekday(), t.Hour(), t.Minute()), nil
}

// AvailableHours lists the bookable hour labels for a date. When the date is
// today, wholly elapsed hours are left out; the current hour stays since
// AvailableMinutes narrows it further. This only narrows what the booking
// form offers; IsOpen remains the authoritative check.
func AvailableHours(date, now time.Time) []string {
	closing, open := closingHour(date.Weekday())
	if !open {
		return nil
	}
	first := OpeningHour
	if sameDay(date, now) {
		if now.Hour() > first {
			first = now.Hour()
		}
		// The closing hour only offers :00, so once that minute has
		// passed the hour has nothing left to book.
		if now.Hour() == closing && now.Minute() > 0 {
			closing--
		}
	}
	var hours []string
	for h := first; h <= closing; h++ {
		hours = append(hours, fmt.Sprintf("%02d", h))
	}
	return hours
}

// AvailableMinutes lists the bookable minute labels for a date and hour.
// The closing hour only offers ":00"; other open hours offer quarter steps.
func AvailableMinutes(date time.Time, hour int, now time.Time) []string {
	closing, open := closingHour(date.Weekday())
	if !open || hour < OpeningHour || hour > closing {
		return nil
	}
	candidates := []int{0, 15, 30, 45}
	if hour == closing {
		candidates = []int{0}
	}
	var minutes []string
	for _, m := range candidates {
		if sameDay(date, now) && (hour < now.Hour() || (hour == now.Hour() && m <= now.Minute())) {
			continue
		}
		minutes = append(minutes, fmt.Sprintf("%02d", m))
	}
	return minutes
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
