package entity

import (
	"time"
)

type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Date        EventDate `json:"date" db:"date"`
	Time        string    `json:"time,omitempty" db:"event_time"`
	Location    string    `json:"location,omitempty" db:"location"`
	AuthorID    int64     `json:"author_id" db:"author_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// EventView is an Event enriched with the render-time status fields.
// Status is never persisted; it is recomputed against the current date
// on every read so it cannot go stale.
type EventView struct {
	Event
	Status   EventStatus `json:"status"`
	DaysAway string      `json:"days_away,omitempty"`
}

func NewEventView(event Event, now time.Time) EventView {
	return EventView{
		Event:    event,
		Status:   Classify(event.Date, now),
		DaysAway: DaysAwayLabel(event.Date, now),
	}
}
