package calendar

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/eventcalendar/internal/rest"
	"github.com/klokku/eventcalendar/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	store *Store
	clock utils.Clock
}

type EventDTO struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Color     string `json:"color"`
}

type SnapshotDTO struct {
	Version uint64     `json:"version"`
	Events  []EventDTO `json:"events"`
}

func NewHandler(store *Store, clock utils.Clock) *Handler {
	return &Handler{store: store, clock: clock}
}

// GetEventsOnDate handles GET /api/calendar/event?date=YYYY-MM-DD.
func (h *Handler) GetEventsOnDate(w http.ResponseWriter, r *http.Request) {
	dateString := mux.Vars(r)["date"]
	if dateString == "" {
		dateString = r.URL.Query().Get("date")
	}
	day, err := utils.ParseDate(dateString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	events := h.store.EventsOnDate(day)
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetSnapshot handles GET /api/calendar/event.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	events := snapshot.Events()
	dto := SnapshotDTO{
		Version: snapshot.Version,
		Events:  make([]EventDTO, 0, len(events)),
	}
	for _, e := range events {
		dto.Events = append(dto.Events, eventToDTO(e))
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateEvent handles POST /api/calendar/event.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	event, err := h.store.AddEvent(r.Context(), dtoToEvent(eventDTO))
	if err != nil {
		if IsValidationError(err) {
			rest.WriteError(w, http.StatusUnprocessableEntity, "Event rejected", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, eventToDTO(event))
}

// ExportICS handles GET /api/calendar/export.ics.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	body := ExportICS(h.store.Snapshot(), h.clock.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Errorf("failed to write calendar export: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to write JSON response: %v", err)
	}
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		Title:     e.Title,
		Date:      e.Date,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Color:     e.Color,
	}
}

func dtoToEvent(e EventDTO) Event {
	return Event{
		Title:     e.Title,
		Date:      e.Date,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Color:     e.Color,
	}
}
