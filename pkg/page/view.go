package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klokku/eventcalendar/internal/event_bus"
	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/klokku/eventcalendar/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

const (
	FieldTitle     = "title"
	FieldDate      = "date"
	FieldStartTime = "startTime"
	FieldEndTime   = "endTime"
	FieldColor     = "color"
)

var Fields = []string{FieldTitle, FieldDate, FieldStartTime, FieldEndTime, FieldColor}

var (
	ErrFormClosed   = errors.New("add event form is not open")
	ErrUnknownField = errors.New("unknown form field")
)

type Settings struct {
	Title        string
	DefaultColor string
	FirstWeekday time.Weekday
}

// Form is the add-event modal. The draft only exists while Open is true.
type Form struct {
	Open  bool
	Draft calendar.Event
	Error string
}

// Model is everything the page template needs for one render.
type Model struct {
	Title       string
	Month       Month
	SelectedKey string
	Form        Form
	Version     uint64
}

// View is the state of the calendar page: the selected date, the add-event
// form and the latest event snapshot received from the store.
type View struct {
	mu          sync.Mutex
	store       *calendar.Store
	clock       utils.Clock
	settings    Settings
	selected    time.Time
	form        Form
	formGen     uint64
	snapshot    calendar.Snapshot
	unsubscribe func()
	closeOnce   sync.Once
}

func NewView(store *calendar.Store, bus *event_bus.EventBus, clock utils.Clock, settings Settings) *View {
	v := &View{
		store:    store,
		clock:    clock,
		settings: settings,
		selected: utils.StartOfDay(clock.Now()),
	}
	v.unsubscribe = event_bus.SubscribeTyped[calendar.Snapshot](bus, event_bus.EventsChanged, v.onEventsChanged)

	// Subscribed first so no change falls between the read and the subscription.
	v.mu.Lock()
	if current := store.Snapshot(); current.Newer(v.snapshot) {
		v.snapshot = current
	}
	v.mu.Unlock()
	return v
}

func (v *View) onEventsChanged(e event_bus.EventT[calendar.Snapshot]) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e.Data.Newer(v.snapshot) {
		log.Debugf("Page picked up events snapshot %d (%d events)", e.Data.Version, e.Data.Len())
		v.snapshot = e.Data
	}
	return nil
}

// Close stops listening for store changes.
func (v *View) Close() {
	v.closeOnce.Do(v.unsubscribe)
}

func (v *View) SelectDate(day time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = utils.StartOfDay(day)
}

// ShiftMonth moves the selected date by n months.
func (v *View) ShiftMonth(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = utils.AddMonths(v.selected, n)
}

func (v *View) Selected() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// OpenForm opens the add-event form with an empty draft. Opening an already
// open form keeps its draft.
func (v *View) OpenForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.form.Open {
		return
	}
	v.formGen++
	v.form = Form{Open: true, Draft: v.emptyDraft()}
}

// SetField updates one draft field and clears the message of a rejected
// submission.
func (v *View) SetField(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.form.Open {
		return ErrFormClosed
	}
	switch name {
	case FieldTitle:
		v.form.Draft.Title = value
	case FieldDate:
		v.form.Draft.Date = value
	case FieldStartTime:
		v.form.Draft.StartTime = value
	case FieldEndTime:
		v.form.Draft.EndTime = value
	case FieldColor:
		v.form.Draft.Color = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	v.form.Error = ""
	return nil
}

// Cancel discards the draft and closes the form.
func (v *View) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.formGen++
	v.form = Form{}
}

// Submit hands the draft to the store. A rejected draft keeps the form open
// with the draft intact and the error message set; an accepted one closes
// the form. If the form was cancelled or reopened meanwhile, the newer form
// is left alone.
func (v *View) Submit(ctx context.Context) error {
	v.mu.Lock()
	if !v.form.Open {
		v.mu.Unlock()
		return ErrFormClosed
	}
	draft := v.form.Draft
	gen := v.formGen
	v.mu.Unlock()

	// The store publishes to onEventsChanged, so v.mu must not be held here.
	_, err := v.store.AddEvent(ctx, draft)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.formGen != gen {
		return err
	}
	if err != nil {
		v.form.Error = userMessage(err)
		return err
	}
	v.formGen++
	v.form = Form{}
	return nil
}

func (v *View) Form() Form {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *View) Model() Model {
	v.mu.Lock()
	defer v.mu.Unlock()
	snapshot := v.snapshot
	return Model{
		Title:       v.settings.Title,
		Month:       BuildMonth(v.selected, v.clock.Now(), v.settings.FirstWeekday, snapshot.OnDate),
		SelectedKey: utils.FormatDate(v.selected),
		Form:        v.form,
		Version:     snapshot.Version,
	}
}

func (v *View) emptyDraft() calendar.Event {
	return calendar.Event{Color: v.settings.DefaultColor}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, calendar.ErrPastDate):
		return "You cannot add an event to a past date!"
	case errors.Is(err, calendar.ErrMissingFields):
		return "Please fill all the fields!"
	default:
		return err.Error()
	}
}
