package entity

import (
	"time"
)

// EventTime accepts the "datetime-local" format the web client submits for
// event dates, falling back to RFC 3339 for API callers.
type EventTime struct {
	time.Time
}

const eventTimeLayout = "2006-01-02T15:04"

func (et *EventTime) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return ErrInvalidInput
	}
	s := string(b[1 : len(b)-1]) // Remove quotes
	t, err := time.Parse(eventTimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	et.Time = t
	return nil
}

func (et EventTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + et.Format(time.RFC3339) + `"`), nil
}
