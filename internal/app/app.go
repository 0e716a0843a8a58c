// Package app wires the engines together: frames in, classified
// gestures through the debounce gate, synthesized audio out to the
// mixer and, while recording, into the session log.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/gesturebeats/internal/detector"
	"github.com/ayusman/gesturebeats/internal/gesture"
	"github.com/ayusman/gesturebeats/internal/mixer"
	"github.com/ayusman/gesturebeats/internal/session"
	"github.com/ayusman/gesturebeats/internal/store"
	"github.com/ayusman/gesturebeats/internal/synth"
)

// Defaults for the pipeline configuration.
const (
	DefaultThreshold = 0.7
	DefaultTempo     = 120
	// frameQueueSize bounds the frame intake channel. The producer
	// runs at camera rate (~30 Hz); when the loop is saturated the
	// newest frame is dropped rather than blocking the producer.
	frameQueueSize = 4
	// eventQueueSize bounds the outward event subscription channel.
	eventQueueSize = 64
)

// Config holds configuration options for the application.
type Config struct {
	// Store indexes finalized sessions; optional.
	Store *store.Store
	// Device receives playback audio; nil degrades to silent output.
	Device mixer.OutputDevice
	// OutputDir receives session artifacts (default "sessions").
	OutputDir string
	// Threshold is the confidence gate for playable triggers,
	// clamped to [0,1] (default 0.7).
	Threshold float64
	// Window is the debounce window length in frames (default 5).
	Window int
	// QueueSize is the playback queue depth in buffers.
	QueueSize int
}

// App is the single owner of all mutable engine state. The pipeline
// goroutine processes frames and control commands; public methods
// marshal onto it rather than mutating state from other goroutines.
type App struct {
	config Config

	classifier *gesture.Classifier
	debouncer  *gesture.Debouncer
	synth      *synth.Synthesizer
	chain      *synth.Chain
	mixer      *mixer.Mixer
	recorder   *session.Recorder

	// Pipeline-owned state. Touched only on the pipeline goroutine.
	instruments map[detector.Hand]string
	volumes     map[detector.Hand]float64
	tempo       float64
	started     time.Time

	frames   chan detector.FramePair
	commands chan func()
	events   chan session.Event
	stopCh   chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	running bool
}

// New creates an App with the given configuration.
func New(config Config) *App {
	if config.OutputDir == "" {
		config.OutputDir = "sessions"
	}
	if config.Threshold == 0 {
		config.Threshold = DefaultThreshold
	}
	config.Threshold = clamp(config.Threshold, 0, 1)

	return &App{
		config:     config,
		classifier: gesture.NewClassifier(),
		debouncer:  gesture.NewDebouncer(config.Window),
		synth:      synth.NewSynthesizer(),
		chain:      &synth.Chain{},
		mixer:      mixer.New(config.Device, config.QueueSize),
		recorder:   session.NewRecorder(config.OutputDir),
		instruments: map[detector.Hand]string{
			detector.HandLeft:  "piano",
			detector.HandRight: "guitar",
		},
		volumes: map[detector.Hand]float64{
			detector.HandLeft:  0.7,
			detector.HandRight: 0.7,
		},
		tempo:    DefaultTempo,
		frames:   make(chan detector.FramePair, frameQueueSize),
		commands: make(chan func(), 16),
		events:   make(chan session.Event, eventQueueSize),
	}
}

// Start launches the pipeline goroutine and the mixer.
func (a *App) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}

	a.started = time.Now()
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	a.running = true
	a.mixer.Start()
	go a.run()

	log.Println("Pipeline started")
}

// Stop halts the pipeline deterministically: intake stops, pending
// commands drain, queued audio flushes to the device, and any active
// recording finalizes. No event is appended after finalize.
func (a *App) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.stopCh)
	a.mu.Unlock()

	<-a.done
	a.mixer.Stop()

	log.Println("Pipeline stopped")
}

// SubmitFrame hands one tracking frame to the pipeline. It never
// blocks the producer: when the loop is saturated the frame is
// dropped.
func (a *App) SubmitFrame(fp detector.FramePair) {
	select {
	case a.frames <- fp:
	default:
	}
}

// Events returns the outward performance-event subscription channel.
func (a *App) Events() <-chan session.Event {
	return a.events
}

// do runs fn on the pipeline goroutine and waits for it. Returns false
// if the pipeline has stopped.
func (a *App) do(fn func()) bool {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return false
	}
	stopCh := a.stopCh
	a.mu.Unlock()

	done := make(chan struct{})
	cmd := func() {
		fn()
		close(done)
	}

	select {
	case a.commands <- cmd:
	case <-stopCh:
		return false
	}

	select {
	case <-done:
		return true
	case <-a.done:
		return false
	}
}

// SetInstrument assigns an instrument to a hand. Unknown instrument
// ids are rejected.
func (a *App) SetInstrument(hand detector.Hand, id string) error {
	if _, ok := synth.Lookup(id); !ok {
		return fmt.Errorf("%w: %q", synth.ErrUnknownInstrument, id)
	}
	a.do(func() { a.instruments[hand] = id })
	return nil
}

// SetVolume sets a hand's volume, clamped to [0, 1].
func (a *App) SetVolume(hand detector.Hand, v float64) {
	v = clamp(v, 0, 1)
	a.do(func() { a.volumes[hand] = v })
}

// SetTempo sets the tempo in BPM, clamped to [60, 200].
func (a *App) SetTempo(bpm float64) {
	bpm = clamp(bpm, 60, 200)
	a.do(func() { a.tempo = bpm })
}

// SetEffect toggles an effect by name. Unknown names are rejected.
func (a *App) SetEffect(name string, enabled bool) error {
	var ok bool
	a.do(func() { ok = a.chain.Set(synth.EffectName(name), enabled) })
	if !ok {
		return fmt.Errorf("unknown effect: %q", name)
	}
	return nil
}

// StartRecording begins a session and returns its ID.
func (a *App) StartRecording() (string, error) {
	return a.StartRecordingNamed("")
}

// StartRecordingNamed begins a session under the given name.
func (a *App) StartRecordingNamed(name string) (string, error) {
	var id string
	if !a.do(func() { id = a.recorder.StartNamed(name) }) {
		return "", fmt.Errorf("pipeline not running")
	}
	log.Printf("Recording started: %s", id)
	return id, nil
}

// StopRecording finalizes the active session. A session with no
// events yields (nil, nil). Persistence failures are returned to the
// caller; the in-memory session is retained for retry.
func (a *App) StopRecording() (*session.Artifacts, error) {
	var (
		art *session.Artifacts
		err error
	)
	if !a.do(func() { art, err = a.finalizeRecording() }) {
		return nil, fmt.Errorf("pipeline not running")
	}
	return art, err
}

// Snapshot is a point-in-time view of the control-surface state.
type Snapshot struct {
	Instruments map[string]string  `json:"instruments"`
	Volumes     map[string]float64 `json:"volumes"`
	Tempo       float64            `json:"tempo"`
	Effects     map[string]bool    `json:"effects"`
	Recording   bool               `json:"recording"`
	SessionID   string             `json:"session_id,omitempty"`
}

// State returns a snapshot of the current control-surface state.
func (a *App) State() Snapshot {
	var snap Snapshot
	a.do(func() {
		snap = Snapshot{
			Instruments: map[string]string{
				"left":  a.instruments[detector.HandLeft],
				"right": a.instruments[detector.HandRight],
			},
			Volumes: map[string]float64{
				"left":  a.volumes[detector.HandLeft],
				"right": a.volumes[detector.HandRight],
			},
			Tempo: a.tempo,
			Effects: map[string]bool{
				"reverb":     a.chain.Reverb,
				"delay":      a.chain.Delay,
				"distortion": a.chain.Distortion,
			},
			Recording: a.recorder.Recording(),
			SessionID: a.recorder.SessionID(),
		}
	})
	return snap
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
