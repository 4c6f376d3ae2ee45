package app

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the page, API and health endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Calendar page
	r.HandleFunc("/", deps.PageHandler.Index).Methods("GET")
	r.HandleFunc("/select", deps.PageHandler.SelectDate).Methods("POST")
	r.HandleFunc("/month/prev", deps.PageHandler.PreviousMonth).Methods("POST")
	r.HandleFunc("/month/next", deps.PageHandler.NextMonth).Methods("POST")
	r.HandleFunc("/event/new", deps.PageHandler.OpenForm).Methods("POST")
	r.HandleFunc("/event/cancel", deps.PageHandler.CancelForm).Methods("POST")
	r.HandleFunc("/event/add", deps.PageHandler.AddEvent).Methods("POST")

	// Calendar API
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEventsOnDate).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetSnapshot).Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/export.ics", deps.CalendarHandler.ExportICS).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
}
