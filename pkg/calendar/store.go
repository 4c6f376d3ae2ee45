package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/klokku/eventcalendar/internal/event_bus"
	"github.com/klokku/eventcalendar/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Store owns the in-memory event collection. Mutations are serialized and
// each one swaps in a new Snapshot, which is then published on the bus as
// event_bus.EventsChanged.
type Store struct {
	mu           sync.Mutex
	current      Snapshot
	clock        utils.Clock
	bus          *event_bus.EventBus
	defaultColor string
}

// NewStore creates a store holding seed. Seed events are not validated.
func NewStore(clock utils.Clock, bus *event_bus.EventBus, defaultColor string, seed []Event) *Store {
	return &Store{
		current:      NewSnapshot(1, seed),
		clock:        clock,
		bus:          bus,
		defaultColor: defaultColor,
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// AddEvent validates draft against the store clock and appends it.
// A rejected draft leaves the collection untouched.
func (s *Store) AddEvent(ctx context.Context, draft Event) (Event, error) {
	if err := draft.Validate(s.clock.Now()); err != nil {
		log.Debugf("Rejected event %q on %q: %v", draft.Title, draft.Date, err)
		return Event{}, err
	}
	event := draft
	if event.Color == "" {
		event.Color = s.defaultColor
	}

	s.mu.Lock()
	events := make([]Event, 0, len(s.current.events)+1)
	events = append(events, s.current.events...)
	events = append(events, event)
	next := Snapshot{Version: s.current.Version + 1, events: events}
	s.current = next
	s.mu.Unlock()

	log.Infof("Added event %q on %s %s", event.Title, event.Date, event.TimeRange())
	s.publish(ctx, next)
	return event, nil
}

// EventsOnDate returns the stored events on day's calendar date.
func (s *Store) EventsOnDate(day time.Time) []Event {
	return s.Snapshot().OnDate(day)
}

// SweepExpired removes every event whose end instant is not after now and
// returns how many were removed. Events without a computable end instant are
// removed as well.
func (s *Store) SweepExpired(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	kept := make([]Event, 0, len(s.current.events))
	for _, e := range s.current.events {
		end, err := e.EndsAt()
		if err != nil {
			log.Warnf("Dropping event %q with unreadable end %q %q: %v", e.Title, e.Date, e.EndTime, err)
			continue
		}
		if end.After(now) {
			kept = append(kept, e)
		}
	}
	removed := len(s.current.events) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	next := Snapshot{Version: s.current.Version + 1, events: kept}
	s.current = next
	s.mu.Unlock()

	log.Infof("Expired %d event(s), %d left", removed, len(kept))
	s.publish(ctx, next)
	return removed
}

// publish announces a committed snapshot. The caller's cancellation does not
// apply: the change is already stored and subscribers must see it.
func (s *Store) publish(ctx context.Context, snapshot Snapshot) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(context.WithoutCancel(ctx), event_bus.EventsChanged, snapshot)
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("failed to publish events snapshot %d: %v", snapshot.Version, err)
	}
}
