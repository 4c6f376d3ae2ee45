package page

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*View, *mux.Router) {
	view, _, _, _ := setupViewTest(t)
	handler, err := NewHandler(view)
	require.NoError(t, err)
	r := mux.NewRouter()
	r.HandleFunc("/", handler.Index).Methods("GET")
	r.HandleFunc("/select", handler.SelectDate).Methods("POST")
	r.HandleFunc("/month/prev", handler.PreviousMonth).Methods("POST")
	r.HandleFunc("/month/next", handler.NextMonth).Methods("POST")
	r.HandleFunc("/event/new", handler.OpenForm).Methods("POST")
	r.HandleFunc("/event/cancel", handler.CancelForm).Methods("POST")
	r.HandleFunc("/event/add", handler.AddEvent).Methods("POST")
	return view, r
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersMonthWithEvents(t *testing.T) {
	_, r := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Survey Sparrow Calendar")
	assert.Contains(t, body, "November 2025")
	assert.Contains(t, body, "Daily Standup")
	assert.Contains(t, body, "04:30 - 07:30")
	assert.Contains(t, body, "+ Add Event")
	assert.NotContains(t, body, "Add New Event")
}

func TestIndex_SelectsDateFromQuery(t *testing.T) {
	view, r := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/?date=2025-12-24", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "December 2025")
	assert.Equal(t, date(2025, time.December, 24), view.Selected())

	req = httptest.NewRequest(http.MethodGet, "/?date=24.12.2025", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectDate(t *testing.T) {
	view, r := setupHandlerTest(t)

	w := postForm(r, "/select", url.Values{"date": {"2025-11-20"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, date(2025, time.November, 20), view.Selected())

	w = postForm(r, "/select", url.Values{"date": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonthNavigation(t *testing.T) {
	view, r := setupHandlerTest(t)

	postForm(r, "/month/next", nil)
	assert.Equal(t, time.December, view.Selected().Month())

	postForm(r, "/month/prev", nil)
	postForm(r, "/month/prev", nil)
	assert.Equal(t, time.October, view.Selected().Month())
}

func TestAddEvent_FormFlow(t *testing.T) {
	view, r := setupHandlerTest(t)

	w := postForm(r, "/event/new", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, view.Form().Open)

	w = postForm(r, "/event/add", url.Values{
		"title":     {""},
		"date":      {"2099-01-01"},
		"startTime": {"10:00"},
		"endTime":   {"11:00"},
		"color":     {"#1faddc"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill all the fields!")
	assert.Contains(t, w.Body.String(), `value="2099-01-01"`)
	assert.True(t, view.Form().Open)

	w = postForm(r, "/event/add", url.Values{
		"title":     {"Release party"},
		"date":      {"2025-11-21"},
		"startTime": {"17:00"},
		"endTime":   {"20:00"},
		"color":     {"#aa00aa"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, view.Form().Open)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "Release party")
	assert.Contains(t, w.Body.String(), "17:00 - 20:00")
}

func TestAddEvent_PastDate(t *testing.T) {
	view, r := setupHandlerTest(t)
	postForm(r, "/event/new", nil)

	w := postForm(r, "/event/add", url.Values{
		"title":     {"Too late"},
		"date":      {"2025-11-07"},
		"startTime": {"10:00"},
		"endTime":   {"11:00"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "You cannot add an event to a past date!")
	assert.Equal(t, "Too late", view.Form().Draft.Title)
}

func TestAddEvent_FormClosed(t *testing.T) {
	_, r := setupHandlerTest(t)

	w := postForm(r, "/event/add", url.Values{"title": {"x"}})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelForm(t *testing.T) {
	view, r := setupHandlerTest(t)
	postForm(r, "/event/new", nil)
	require.NoError(t, view.SetField(FieldTitle, "Draft"))

	w := postForm(r, "/event/cancel", url.Values{"title": {"Draft"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, view.Form().Open)
}
