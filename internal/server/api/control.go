package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/gesturebeats/internal/app"
	"github.com/ayusman/gesturebeats/internal/detector"
	"github.com/ayusman/gesturebeats/internal/session"
)

// Controller is the live control surface exposed over HTTP. It is
// implemented by *app.App.
type Controller interface {
	SetInstrument(hand detector.Hand, id string) error
	SetVolume(hand detector.Hand, v float64)
	SetTempo(bpm float64)
	SetEffect(name string, enabled bool) error
	StartRecordingNamed(name string) (string, error)
	StopRecording() (*session.Artifacts, error)
	State() app.Snapshot
}

// ControlHandler handles live performance control requests.
type ControlHandler struct {
	controller Controller
}

// NewControlHandler creates a new ControlHandler.
func NewControlHandler(c Controller) *ControlHandler {
	return &ControlHandler{controller: c}
}

type controlRequest struct {
	Action     string   `json:"action"`
	Hand       string   `json:"hand,omitempty"`
	Instrument string   `json:"instrument,omitempty"`
	Volume     *float64 `json:"volume,omitempty"`
	Tempo      *float64 `json:"tempo,omitempty"`
	Effect     string   `json:"effect,omitempty"`
	Enabled    *bool    `json:"enabled,omitempty"`
}

// ServeHTTP handles GET (state snapshot) and POST (control action)
// requests to /api/control.
func (h *ControlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.controller.State())
	case http.MethodPost:
		h.apply(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// apply decodes and executes one control action, then returns the
// resulting state snapshot.
func (h *ControlHandler) apply(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Action {
	case "set_instrument":
		hand, ok := parseHand(req.Hand)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid hand")
			return
		}
		if err := h.controller.SetInstrument(hand, req.Instrument); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "set_volume":
		hand, ok := parseHand(req.Hand)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid hand")
			return
		}
		if req.Volume == nil {
			writeError(w, http.StatusBadRequest, "Volume is required")
			return
		}
		h.controller.SetVolume(hand, *req.Volume)
	case "set_tempo":
		if req.Tempo == nil {
			writeError(w, http.StatusBadRequest, "Tempo is required")
			return
		}
		h.controller.SetTempo(*req.Tempo)
	case "set_effect":
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "Enabled is required")
			return
		}
		if err := h.controller.SetEffect(req.Effect, *req.Enabled); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	writeJSON(w, http.StatusOK, h.controller.State())
}

func parseHand(s string) (detector.Hand, bool) {
	switch detector.Hand(s) {
	case detector.HandLeft:
		return detector.HandLeft, true
	case detector.HandRight:
		return detector.HandRight, true
	}
	return "", false
}

// RecordingHandler handles recording lifecycle requests.
type RecordingHandler struct {
	controller Controller
}

// NewRecordingHandler creates a new RecordingHandler.
func NewRecordingHandler(c Controller) *RecordingHandler {
	return &RecordingHandler{controller: c}
}

type startRecordingRequest struct {
	Name string `json:"name"`
}

type startRecordingResponse struct {
	SessionID string `json:"session_id"`
}

type stopRecordingResponse struct {
	Discarded bool               `json:"discarded"`
	Artifacts *session.Artifacts `json:"artifacts,omitempty"`
}

// ServeHTTP routes POST /api/recording/start and /api/recording/stop.
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/recording/start":
		h.start(w, r)
	case "/api/recording/stop":
		h.stop(w, r)
	default:
		http.NotFound(w, r)
	}
}

// start handles POST /api/recording/start.
func (h *RecordingHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startRecordingRequest
	if r.Body != nil {
		// An empty body means an auto-generated session name.
		json.NewDecoder(r.Body).Decode(&req)
	}

	id, err := h.controller.StartRecordingNamed(req.Name)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, startRecordingResponse{SessionID: id})
}

// stop handles POST /api/recording/stop. A recording with no events
// is discarded rather than written.
func (h *RecordingHandler) stop(w http.ResponseWriter, r *http.Request) {
	art, err := h.controller.StopRecording()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stopRecordingResponse{
		Discarded: art == nil,
		Artifacts: art,
	})
}
