package calendar

import (
	"time"

	"github.com/klokku/eventcalendar/internal/utils"
)

// Snapshot is an immutable view of the event collection. Every store
// mutation produces a new snapshot with a higher Version; the events of a
// published snapshot are never modified.
type Snapshot struct {
	Version uint64
	events  []Event
}

func NewSnapshot(version uint64, events []Event) Snapshot {
	return Snapshot{Version: version, events: append([]Event{}, events...)}
}

func (s Snapshot) Len() int {
	return len(s.events)
}

// Events returns a copy of the events in storage order.
func (s Snapshot) Events() []Event {
	return append([]Event{}, s.events...)
}

// OnDate returns the events whose date is day's calendar date, in storage order.
func (s Snapshot) OnDate(day time.Time) []Event {
	key := utils.FormatDate(day)
	events := make([]Event, 0)
	for _, e := range s.events {
		if e.Date == key {
			events = append(events, e)
		}
	}
	return events
}

// Newer reports whether s is a later state than other.
func (s Snapshot) Newer(other Snapshot) bool {
	return s.Version > other.Version
}
