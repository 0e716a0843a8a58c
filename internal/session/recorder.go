package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/ayusman/gesturebeats/internal/synth"
)

// Status represents the recorder lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRecording Status = "recording"
)

// Artifacts describes the files produced by a finalized recording.
type Artifacts struct {
	SessionID   string  `json:"session_id"`
	AudioPath   string  `json:"audio_path"`
	EventsPath  string  `json:"events_path"`
	MetricsPath string  `json:"metrics_path"`
	Duration    float64 `json:"duration"`
	Metrics     Metrics `json:"metrics"`
}

// Recorder accumulates audio buffers and performance events for the
// active session and finalizes them to disk.
//
// The recorder is owned by the pipeline goroutine; control commands
// are marshalled there, so no internal locking is needed.
type Recorder struct {
	outputDir string
	status    Status
	sessionID string
	startTime time.Time
	log       *Log
	audio     []*synth.Buffer
}

// NewRecorder creates a Recorder writing finalized sessions under
// outputDir.
func NewRecorder(outputDir string) *Recorder {
	return &Recorder{
		outputDir: outputDir,
		status:    StatusIdle,
		log:       NewLog(),
	}
}

// Start begins a new session with a generated ID, discarding any
// unfinalized data. Returns the session ID.
func (r *Recorder) Start() string {
	return r.StartNamed("")
}

// StartNamed begins a new session under the given name. Names are
// reduced to their base path component so a caller cannot steer the
// artifact files outside the output directory. Empty names get a
// timestamped ID.
func (r *Recorder) StartNamed(name string) string {
	if name != "" {
		name = filepath.Base(name)
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = fmt.Sprintf("session_%s_%s",
			time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	}

	r.sessionID = name
	r.startTime = time.Now()
	r.status = StatusRecording
	r.log = NewLog()
	r.audio = nil
	return name
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	return r.status == StatusRecording
}

// SessionID returns the active session's ID, or empty.
func (r *Recorder) SessionID() string {
	if r.status != StatusRecording {
		return ""
	}
	return r.sessionID
}

// Elapsed returns the time since the session started.
func (r *Recorder) Elapsed() time.Duration {
	return time.Since(r.startTime)
}

// Append records one published buffer together with its event. Calls
// outside an active session are ignored.
func (r *Recorder) Append(b *synth.Buffer, e Event) {
	if r.status != StatusRecording || b == nil {
		return
	}
	r.audio = append(r.audio, b)
	r.log.Append(e)
}

// Log exposes the active event log.
func (r *Recorder) Log() *Log {
	return r.log
}

// Stop finalizes the session. With zero recorded events it returns
// (nil, nil): no empty WAV is written. On a write failure the error is
// returned and the in-memory log and buffers are retained so the stop
// can be retried.
func (r *Recorder) Stop() (*Artifacts, error) {
	if r.status != StatusRecording {
		return nil, nil
	}

	if r.log.Len() == 0 {
		r.status = StatusIdle
		r.audio = nil
		return nil, nil
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	audioPath := filepath.Join(r.outputDir, r.sessionID+".wav")
	eventsPath := filepath.Join(r.outputDir, r.sessionID+".json")
	metricsPath := filepath.Join(r.outputDir, r.sessionID+"_metrics.json")

	if err := r.writeWAV(audioPath); err != nil {
		return nil, err
	}
	if err := writeJSON(eventsPath, r.log.Events()); err != nil {
		return nil, err
	}
	metrics := r.log.Metrics()
	if err := writeJSON(metricsPath, metrics); err != nil {
		return nil, err
	}

	art := &Artifacts{
		SessionID:   r.sessionID,
		AudioPath:   audioPath,
		EventsPath:  eventsPath,
		MetricsPath: metricsPath,
		Duration:    time.Since(r.startTime).Seconds(),
		Metrics:     metrics,
	}

	r.status = StatusIdle
	r.audio = nil
	r.log = NewLog()
	return art, nil
}

// writeWAV concatenates the session buffers in emission order, clips
// to [-1, 1], quantizes to 16-bit PCM and serializes a stereo WAV.
func (r *Recorder) writeWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, synth.SampleRate, synth.BitDepth, synth.NumChannels, 1)

	data := make([]int, 0, len(r.audio)*synth.ToneSamples*synth.NumChannels)
	for _, b := range r.audio {
		for i := 0; i < b.Samples(); i++ {
			data = append(data, quantize(b.Left[i]), quantize(b.Right[i]))
		}
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: synth.NumChannels,
			SampleRate:  synth.SampleRate,
		},
		Data:           data,
		SourceBitDepth: synth.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// quantize clips a float sample to [-1, 1] and scales it to int16
// range.
func quantize(v float64) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * 32767)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
