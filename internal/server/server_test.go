package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/gesturebeats/internal/app"
	"github.com/ayusman/gesturebeats/internal/mixer"
	"github.com/ayusman/gesturebeats/internal/session"
	"github.com/ayusman/gesturebeats/internal/store"
)

func testServer(t *testing.T) (*Server, *store.Store, *app.App) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	a := app.New(app.Config{
		Store:     st,
		Device:    mixer.NewMockDevice(),
		OutputDir: t.TempDir(),
	})
	a.Start()
	t.Cleanup(a.Stop)

	return New(Config{Store: st, App: a}), st, a
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s, _, _ := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
}

func TestServer_Instruments(t *testing.T) {
	s, _, _ := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/instruments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp instrumentsList
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Instruments) != 6 {
		t.Errorf("expected 6 instruments, got %d", len(resp.Instruments))
	}
}

func TestServer_ControlState(t *testing.T) {
	s, _, _ := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/control", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var snap app.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Instruments["left"] != "piano" {
		t.Errorf("expected default piano on left, got %q", snap.Instruments["left"])
	}
}

func TestServer_ControlSetInstrument(t *testing.T) {
	s, _, a := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/control", map[string]any{
		"action":     "set_instrument",
		"hand":       "left",
		"instrument": "flute",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got := a.State().Instruments["left"]; got != "flute" {
		t.Errorf("expected flute assigned, got %q", got)
	}
}

func TestServer_ControlValidation(t *testing.T) {
	s, _, _ := testServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown action", map[string]any{"action": "explode"}},
		{"bad hand", map[string]any{"action": "set_instrument", "hand": "middle", "instrument": "piano"}},
		{"unknown instrument", map[string]any{"action": "set_instrument", "hand": "left", "instrument": "kazoo"}},
		{"missing volume", map[string]any{"action": "set_volume", "hand": "left"}},
		{"missing tempo", map[string]any{"action": "set_tempo"}},
		{"unknown effect", map[string]any{"action": "set_effect", "effect": "flanger", "enabled": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/control", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestServer_SessionsEmpty(t *testing.T) {
	s, _, _ := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/sessions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Sessions []json.RawMessage `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sessions) != 0 {
		t.Errorf("expected empty session list, got %d", len(resp.Sessions))
	}
}

func TestServer_SessionNotFound(t *testing.T) {
	s, _, _ := testServer(t)

	for _, path := range []string{
		"/api/sessions/nope",
		"/api/sessions/nope/stats",
		"/api/sessions/nope/export",
	} {
		w := doRequest(t, s, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestServer_SessionStatsAndExport(t *testing.T) {
	s, st, _ := testServer(t)

	events := []session.Event{
		{Timestamp: 0, Hand: "left", Instrument: "piano", Gesture: "peace", Note: "C4", Duration: 0.5},
		{Timestamp: 1, Hand: "left", Instrument: "piano", Gesture: "peace", Note: "=C4", Duration: 0.5},
	}
	err := st.Sessions().Create(&store.Session{ID: "take1"}, events)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	w := doRequest(t, s, http.MethodGet, "/api/sessions/take1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", w.Code)
	}
	var m session.Metrics
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}
	if m.TotalEvents != 2 {
		t.Errorf("expected 2 events, got %d", m.TotalEvents)
	}
	if m.EstimatedBPM != 120 {
		t.Errorf("expected 120 BPM, got %f", m.EstimatedBPM)
	}

	w = doRequest(t, s, http.MethodGet, "/api/sessions/take1/export?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "'=C4") {
		t.Errorf("expected formula-bearing note defused in CSV, got %q", w.Body.String())
	}

	w = doRequest(t, s, http.MethodGet, "/api/sessions/take1/export?format=xml", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad format, got %d", w.Code)
	}
}

func TestServer_SessionDelete(t *testing.T) {
	s, st, _ := testServer(t)

	if err := st.Sessions().Create(&store.Session{ID: "take1"}, nil); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	w := doRequest(t, s, http.MethodDelete, "/api/sessions/take1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doRequest(t, s, http.MethodDelete, "/api/sessions/take1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestServer_RecordingStartStop(t *testing.T) {
	s, _, _ := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/recording/start", map[string]any{"name": "take1"})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var started struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if started.SessionID != "take1" {
		t.Errorf("expected session id take1, got %q", started.SessionID)
	}

	// No events recorded: the stop discards the session.
	w = doRequest(t, s, http.MethodPost, "/api/recording/stop", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stop: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stopped struct {
		Discarded bool `json:"discarded"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stopped); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !stopped.Discarded {
		t.Error("expected empty recording reported as discarded")
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s, _, _ := testServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/health"},
		{http.MethodPut, "/api/sessions"},
		{http.MethodGet, "/api/recording/start"},
	}

	for _, tt := range tests {
		w := doRequest(t, s, tt.method, tt.path, nil)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected 405, got %d", tt.method, tt.path, w.Code)
		}
	}
}
