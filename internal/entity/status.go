package entity

import (
	"fmt"
	"time"
)

// EventStatus is the temporal classification of an event relative to the
// current date.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusToday    EventStatus = "today"
	StatusPast     EventStatus = "past"
)

const secondsPerDay = 86400

// Classify returns the status of an event dated date as seen at now.
// Comparison happens at calendar-date granularity: an event later today is
// StatusToday, not StatusUpcoming.
func Classify(date EventDate, now time.Time) EventStatus {
	eventDay := startOfDay(date.Time)
	today := startOfDay(now)

	switch {
	case eventDay.After(today):
		return StatusUpcoming
	case eventDay.Before(today):
		return StatusPast
	default:
		return StatusToday
	}
}

// DaysAway returns the number of whole days between now and the event date.
// ok is false for past events, for which the value is undefined.
func DaysAway(date EventDate, now time.Time) (int, bool) {
	seconds := int(startOfDay(date.Time).Sub(startOfDay(now)).Seconds())
	days := seconds / secondsPerDay
	if days < 0 {
		return 0, false
	}
	return days, true
}

// DaysAwayLabel renders the human-readable countdown badge: "Today",
// "1 day away", "N days away". Past events get an empty label.
func DaysAwayLabel(date EventDate, now time.Time) string {
	days, ok := DaysAway(date, now)
	if !ok {
		return ""
	}
	switch days {
	case 0:
		return "Today"
	case 1:
		return "1 day away"
	default:
		return fmt.Sprintf("%d days away", days)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
