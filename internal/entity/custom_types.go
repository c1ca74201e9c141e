package entity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// EventDate is a calendar date without a time-of-day component.
type EventDate struct {
	time.Time
}

const eventDateLayout = "2006-01-02"

func ParseEventDate(s string) (EventDate, error) {
	t, err := time.Parse(eventDateLayout, s)
	if err != nil {
		return EventDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return EventDate{Time: t}, nil
}

func (d *EventDate) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return ErrInvalidDate
	}
	s := string(b[1 : len(b)-1]) // Remove quotes
	parsed, err := ParseEventDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

func (d EventDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(eventDateLayout) + `"`), nil
}

func (d EventDate) String() string {
	return d.Format(eventDateLayout)
}

func (d EventDate) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *EventDate) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		d.Time = v
	case []byte:
		t, err := time.Parse(eventDateLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = t
	case string:
		t, err := time.Parse(eventDateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
	default:
		return fmt.Errorf("cannot scan type %T into EventDate", value)
	}
	return nil
}
