package page

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/klokku/eventcalendar/pkg/calendar"
)

// DayContent returns the events rendered inside one day cell.
type DayContent func(day time.Time) []calendar.Event

type Chip struct {
	Title     string
	TimeRange string
	Color     string
}

type Cell struct {
	Date     time.Time
	Key      string
	Day      int
	Outside  bool
	Today    bool
	Selected bool
	Chips    []Chip
}

type Month struct {
	Title    string
	Weekdays []string
	Weeks    [][]Cell
}

// BuildMonth lays out the month containing selected as full weeks starting
// on firstWeekday. Days of the neighbouring months fill the first and last
// week and are flagged Outside.
func BuildMonth(selected, today time.Time, firstWeekday time.Weekday, content DayContent) Month {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	last := first.AddDate(0, 1, -1)
	offset := (int(first.Weekday()) - int(firstWeekday) + 7) % 7
	start := first.AddDate(0, 0, -offset)

	month := Month{
		Title:    first.Format("January 2006"),
		Weekdays: make([]string, 0, 7),
	}
	for i := 0; i < 7; i++ {
		month.Weekdays = append(month.Weekdays, time.Weekday((int(firstWeekday)+i)%7).String()[:3])
	}

	selectedKey := utils.FormatDate(selected)
	todayKey := utils.FormatDate(today)
	for weekStart := start; !weekStart.After(last); weekStart = weekStart.AddDate(0, 0, 7) {
		week := make([]Cell, 0, 7)
		for i := 0; i < 7; i++ {
			day := weekStart.AddDate(0, 0, i)
			key := utils.FormatDate(day)
			cell := Cell{
				Date:     day,
				Key:      key,
				Day:      day.Day(),
				Outside:  day.Month() != first.Month(),
				Today:    key == todayKey,
				Selected: key == selectedKey,
				Chips:    make([]Chip, 0),
			}
			for _, e := range content(day) {
				cell.Chips = append(cell.Chips, Chip{Title: e.Title, TimeRange: e.TimeRange(), Color: e.Color})
			}
			week = append(week, cell)
		}
		month.Weeks = append(month.Weeks, week)
	}
	return month
}

// RenderText writes the month as a plain text grid followed by the events
// of the month's days. Days with events are marked with '*', the selected
// day is bracketed.
func RenderText(w io.Writer, m Month) error {
	var b strings.Builder
	width := 7*6 - 1
	pad := (width - len(m.Title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", pad), m.Title)
	for i, name := range m.Weekdays {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, " %-4s", name)
	}
	b.WriteString("\n")

	var listing strings.Builder
	for _, week := range m.Weeks {
		for i, cell := range week {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(textCell(cell))
			if cell.Outside {
				continue
			}
			for _, chip := range cell.Chips {
				fmt.Fprintf(&listing, "%s  %s  %s\n", cell.Key, chip.TimeRange, chip.Title)
			}
		}
		b.WriteString("\n")
	}
	if listing.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(listing.String())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func textCell(c Cell) string {
	if c.Outside {
		return "     "
	}
	marker := " "
	if len(c.Chips) > 0 {
		marker = "*"
	}
	if c.Selected {
		return fmt.Sprintf("[%2d]%s", c.Day, marker)
	}
	return fmt.Sprintf(" %2d %s", c.Day, marker)
}
