package page

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/klokku/eventcalendar/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templates embed.FS

type Handler struct {
	view *View
	tmpl *template.Template
}

func NewHandler(view *View) (*Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/calendar.html")
	if err != nil {
		return nil, err
	}
	return &Handler{view: view, tmpl: tmpl}, nil
}

// Index renders the page. An optional date query parameter selects that day.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		day, err := utils.ParseDate(dateString)
		if err != nil {
			http.Error(w, "'date' must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		h.view.SelectDate(day)
	}
	h.render(w, http.StatusOK)
}

func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	day, err := utils.ParseDate(r.PostForm.Get("date"))
	if err != nil {
		http.Error(w, "'date' must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}
	h.view.SelectDate(day)
	redirectHome(w, r)
}

func (h *Handler) PreviousMonth(w http.ResponseWriter, r *http.Request) {
	h.view.ShiftMonth(-1)
	redirectHome(w, r)
}

func (h *Handler) NextMonth(w http.ResponseWriter, r *http.Request) {
	h.view.ShiftMonth(1)
	redirectHome(w, r)
}

func (h *Handler) OpenForm(w http.ResponseWriter, r *http.Request) {
	h.view.OpenForm()
	redirectHome(w, r)
}

func (h *Handler) CancelForm(w http.ResponseWriter, r *http.Request) {
	h.view.Cancel()
	redirectHome(w, r)
}

// AddEvent copies the posted fields into the draft and submits it. A rejected
// draft re-renders the page with the form still open.
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, field := range Fields {
		if _, ok := r.PostForm[field]; !ok {
			continue
		}
		if err := h.view.SetField(field, r.PostForm.Get(field)); err != nil {
			if errors.Is(err, ErrFormClosed) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	err := h.view.Submit(r.Context())
	if err != nil {
		if errors.Is(err, ErrFormClosed) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if calendar.IsValidationError(err) {
			h.render(w, http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}

func (h *Handler) render(w http.ResponseWriter, status int) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, h.view.Model()); err != nil {
		log.Errorf("failed to render calendar page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("failed to write calendar page: %v", err)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
