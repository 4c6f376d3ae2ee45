package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klokku/eventcalendar/internal/config"
	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/klokku/eventcalendar/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_Routes(t *testing.T) {
	application, err := NewApplication(config.Default())
	require.NoError(t, err)
	server := httptest.NewServer(application.Handler())
	defer server.Close()

	testCases := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "Survey Sparrow Calendar"},
		{"/api/calendar/event?date=2025-11-09", http.StatusOK, "Weekly Catchup"},
		{"/api/calendar/event", http.StatusOK, `"version":1`},
		{"/api/calendar/export.ics", http.StatusOK, "BEGIN:VCALENDAR"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(server.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}

func TestApplication_ApiAddShowsOnPage(t *testing.T) {
	application, err := NewApplication(config.Default())
	require.NoError(t, err)
	server := httptest.NewServer(application.Handler())
	defer server.Close()

	tomorrow := utils.FormatDate(time.Now().AddDate(0, 0, 1))
	body, err := json.Marshal(calendar.EventDTO{Title: "Dentist", Date: tomorrow, StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	resp, err := http.Post(server.URL+"/api/calendar/event", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(server.URL + "/?date=" + tomorrow)
	require.NoError(t, err)
	defer resp.Body.Close()
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Dentist")
}

func TestBuildDependencies_SeedDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Calendar.Seed = false

	deps, err := BuildDependencies(cfg, &utils.MockClock{FixedNow: time.Now()})
	require.NoError(t, err)
	defer deps.PageView.Close()

	assert.Equal(t, 0, deps.CalendarStore.Snapshot().Len())
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Listen = "127.0.0.1:0"
	application, err := NewApplication(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- application.Run(ctx)
	}()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
}
