package app

import (
	"github.com/klokku/eventcalendar/internal/config"
	"github.com/klokku/eventcalendar/internal/event_bus"
	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/klokku/eventcalendar/pkg/calendar"
	"github.com/klokku/eventcalendar/pkg/expiry"
	"github.com/klokku/eventcalendar/pkg/page"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	CalendarStore   *calendar.Store
	CalendarHandler *calendar.Handler

	ExpirySweeper *expiry.Sweeper

	PageView    *page.View
	PageHandler *page.Handler
}

// NewStore creates the event store described by cfg, seeded with the
// example events when enabled.
func NewStore(cfg config.Application, clock utils.Clock, bus *event_bus.EventBus) *calendar.Store {
	var seed []calendar.Event
	if cfg.Calendar.Seed {
		seed = calendar.ExampleEvents()
	}
	return calendar.NewStore(clock, bus, cfg.Calendar.DefaultColor, seed)
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()

	deps.CalendarStore = NewStore(cfg, deps.Clock, deps.EventBus)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarStore, deps.Clock)

	deps.ExpirySweeper = expiry.NewSweeper(deps.CalendarStore, deps.Clock, cfg.Sweep.Interval)

	deps.PageView = page.NewView(deps.CalendarStore, deps.EventBus, deps.Clock, page.Settings{
		Title:        cfg.Calendar.Title,
		DefaultColor: cfg.Calendar.DefaultColor,
		FirstWeekday: cfg.Calendar.FirstWeekday(),
	})
	pageHandler, err := page.NewHandler(deps.PageView)
	if err != nil {
		deps.PageView.Close()
		return nil, err
	}
	deps.PageHandler = pageHandler

	return deps, nil
}
