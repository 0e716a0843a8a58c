package synth

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/ayusman/gesturebeats/internal/detector"
	"github.com/ayusman/gesturebeats/internal/gesture"
)

// ErrUnknownInstrument is returned when a synthesis request names an
// instrument outside the catalog. The caller logs it and carries on;
// it never interrupts the frame loop.
var ErrUnknownInstrument = errors.New("unknown instrument")

// Synthesizer renders gesture events into stereo tone buffers. It is
// stateless; every call is deterministic in its inputs.
type Synthesizer struct{}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// voiceSlot maps each gesture symbol to its fixed voice-table slot.
func voiceSlot(sym gesture.Symbol) int {
	switch sym {
	case gesture.SymbolPeace:
		return 0
	case gesture.SymbolFist:
		return 1
	case gesture.SymbolOpenPalm:
		return 2
	case gesture.SymbolThumbsUp:
		return 3
	case gesture.SymbolRockHorn:
		return 4
	case gesture.SymbolPinch:
		return 5
	}
	return 0
}

// Synthesize renders one tone for the given instrument, gesture and
// hand. The gesture selects a slot in the instrument's voice table
// (slot modulo voice count, so the mapping is total); the hand selects
// the stereo channel (left hand to left channel, right to right);
// volume in [0,1] scales the panned signal. Returns the buffer and the
// resolved voice name.
func (s *Synthesizer) Synthesize(instrumentID string, sym gesture.Symbol, hand detector.Hand, volume float64) (*Buffer, string, error) {
	inst, ok := Lookup(instrumentID)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownInstrument, instrumentID)
	}

	voice := inst.Voices[voiceSlot(sym)%len(inst.Voices)]

	var mono []float64
	if inst.Waveform == WaveformNoise {
		mono = renderPercussion(voice)
	} else {
		mono = renderMelodic(inst, voice)
	}

	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}

	buf := NewBuffer()
	channel := buf.Right
	if hand == detector.HandLeft {
		channel = buf.Left
	}
	for i, v := range mono {
		channel[i] = v * volume
	}

	return buf, voice, nil
}

// renderMelodic generates the instrument's base waveform at the
// voice's pitch and shapes it with the instrument envelope.
func renderMelodic(inst Instrument, voice string) []float64 {
	freq := NoteFrequency(voice)
	out := make([]float64, ToneSamples)

	for i := range out {
		t := float64(i) / SampleRate
		switch inst.Waveform {
		case WaveformSawtooth:
			// Fractional-phase sawtooth in [-1, 1).
			ft := t * freq
			out[i] = 2 * (ft - math.Floor(ft+0.5))
		case WaveformSquare:
			out[i] = sign(math.Sin(2 * math.Pi * freq * t))
		default:
			out[i] = math.Sin(2 * math.Pi * freq * t)
		}
	}

	applyEnvelope(out, inst.Envelope)
	return out
}

// applyEnvelope shapes samples with a four-stage linear ADSR. Phase
// lengths are computed in samples and clamped in order so attack,
// decay and release never exceed the buffer; whatever remains is held
// at the sustain level.
func applyEnvelope(samples []float64, env ADSR) {
	total := len(samples)

	attack := clampPhase(env.Attack, total)
	decay := clampPhase(env.Decay, total-attack)
	release := clampPhase(env.Release, total-attack-decay)
	sustain := total - attack - decay - release

	i := 0
	for j := 0; j < attack; j, i = j+1, i+1 {
		samples[i] *= float64(j) / float64(attack)
	}
	for j := 0; j < decay; j, i = j+1, i+1 {
		frac := float64(j) / float64(decay)
		samples[i] *= 1 - frac*(1-env.Sustain)
	}
	for j := 0; j < sustain; j, i = j+1, i+1 {
		samples[i] *= env.Sustain
	}
	for j := 0; j < release; j, i = j+1, i+1 {
		frac := float64(j) / float64(release)
		samples[i] *= env.Sustain * (1 - frac)
	}
}

func clampPhase(seconds float64, remaining int) int {
	n := int(seconds * SampleRate)
	if n < 0 {
		n = 0
	}
	if n > remaining {
		n = remaining
	}
	return n
}

// Percussion voice parameters: carrier frequency (0 for noise-based
// voices), noise amplitude, and exponential decay rate per second.
var percussionVoices = map[string]struct {
	freq  float64
	noise float64
	decay float64
}{
	"kick":  {freq: 60, decay: 10},
	"snare": {noise: 0.3, decay: 15},
	"hihat": {noise: 0.1, decay: 20},
	"crash": {noise: 0.2, decay: 8},
	"tom1":  {freq: 150, decay: 5},
	"tom2":  {freq: 200, decay: 6},
}

// renderPercussion generates a percussive voice: a sine carrier or
// Gaussian noise burst under an exponential decay envelope. Noise is
// drawn from a source seeded by the voice name, so output for a given
// voice is deterministic.
func renderPercussion(voice string) []float64 {
	params, ok := percussionVoices[voice]
	if !ok {
		// Tonal fallback for unmapped drum names.
		params = struct {
			freq  float64
			noise float64
			decay float64
		}{freq: 200, decay: 8}
	}

	out := make([]float64, ToneSamples)
	var rng *rand.Rand
	if params.noise > 0 {
		rng = rand.New(rand.NewSource(voiceSeed(voice)))
	}

	for i := range out {
		t := float64(i) / SampleRate
		var v float64
		if params.noise > 0 {
			v = rng.NormFloat64() * params.noise
		} else {
			v = math.Sin(2 * math.Pi * params.freq * t)
		}
		out[i] = v * math.Exp(-t*params.decay)
	}
	return out
}

func voiceSeed(voice string) int64 {
	h := fnv.New64a()
	h.Write([]byte(voice))
	return int64(h.Sum64())
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
