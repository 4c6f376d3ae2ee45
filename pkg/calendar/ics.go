package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const icsProductId = "-//klokku//eventcalendar//EN"

// eventUID derives a stable iCalendar UID from the event's position and fields.
func eventUID(index int, e Event) string {
	name := fmt.Sprintf("%d|%s|%s|%s|%s", index, e.Title, e.Date, e.StartTime, e.EndTime)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String() + "@eventcalendar"
}

// ExportICS renders the snapshot as an iCalendar document. stamp is used as DTSTAMP.
func ExportICS(snapshot Snapshot, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductId)

	for i, e := range snapshot.events {
		start, err := e.StartsAt()
		if err != nil {
			log.Warnf("Skipping event %q in export: %v", e.Title, err)
			continue
		}
		end, err := e.EndsAt()
		if err != nil {
			log.Warnf("Skipping event %q in export: %v", e.Title, err)
			continue
		}

		vevent := cal.AddEvent(eventUID(i, e))
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(e.Title)
		vevent.SetStartAt(start)
		vevent.SetEndAt(end)
		if e.Color != "" {
			vevent.SetProperty(ical.ComponentProperty("COLOR"), e.Color)
		}
	}

	return cal.Serialize()
}
