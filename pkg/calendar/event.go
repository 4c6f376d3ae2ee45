package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/klokku/eventcalendar/internal/utils"
)

var (
	ErrMissingFields = errors.New("please fill all the fields")
	ErrPastDate      = errors.New("you cannot add an event to a past date")
	ErrInvalidFormat = errors.New("invalid event field format")
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Event is a titled, colored, time-bounded entry on one calendar day.
// Date is YYYY-MM-DD, StartTime and EndTime are HH:MM in the local zone.
// EndTime is not required to be after StartTime.
type Event struct {
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Color     string
}

// IsValidationError reports whether err is one of the user input errors
// returned by Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) || errors.Is(err, ErrPastDate) || errors.Is(err, ErrInvalidFormat)
}

// Validate checks e as a new event submitted at now. The past date check
// runs before the required fields check.
func (e Event) Validate(now time.Time) error {
	if e.Date != "" {
		day, err := utils.ParseDate(e.Date)
		if err != nil {
			return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidFormat, e.Date)
		}
		if utils.IsBeforeDay(day, now) {
			return ErrPastDate
		}
	}

	if e.Title == "" || e.Date == "" || e.StartTime == "" || e.EndTime == "" {
		return ErrMissingFields
	}

	if _, err := utils.ParseTimeOfDay(e.StartTime); err != nil {
		return fmt.Errorf("%w: start time %q is not HH:MM", ErrInvalidFormat, e.StartTime)
	}
	if _, err := utils.ParseTimeOfDay(e.EndTime); err != nil {
		return fmt.Errorf("%w: end time %q is not HH:MM", ErrInvalidFormat, e.EndTime)
	}
	if e.Color != "" && !colorPattern.MatchString(e.Color) {
		return fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidFormat, e.Color)
	}
	return nil
}

func (e Event) StartsAt() (time.Time, error) {
	return utils.CombineDateTime(e.Date, e.StartTime)
}

// EndsAt is the instant the event expires at.
func (e Event) EndsAt() (time.Time, error) {
	return utils.CombineDateTime(e.Date, e.EndTime)
}

// TimeRange renders "start - end" as shown on calendar chips.
func (e Event) TimeRange() string {
	return e.StartTime + " - " + e.EndTime
}

// ExampleEvents are the events a fresh calendar starts with.
func ExampleEvents() []Event {
	return []Event{
		{
			Title:     "Daily Standup",
			Date:      "2025-11-08",
			StartTime: "00:00",
			EndTime:   "01:30",
			Color:     "#f6be23",
		},
		{
			Title:     "Weekly Catchup",
			Date:      "2025-11-09",
			StartTime: "04:30",
			EndTime:   "07:30",
			Color:     "#f6501e",
		},
	}
}
