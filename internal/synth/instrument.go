package synth

// Waveform identifies the base oscillator shape of an instrument.
type Waveform string

const (
	WaveformSine     Waveform = "sine"
	WaveformSawtooth Waveform = "sawtooth"
	WaveformSquare   Waveform = "square"
	WaveformNoise    Waveform = "noise"
)

// ADSR holds an attack/decay/sustain/release envelope. Attack, Decay
// and Release are phase lengths in seconds; Sustain is the level held
// between decay and release.
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Instrument is an immutable catalog entry: an ordered voice table,
// base waveform and envelope.
type Instrument struct {
	ID       string
	Name     string
	Voices   []string
	Waveform Waveform
	Envelope ADSR
}

// catalog is the fixed instrument set, read-only at runtime.
var catalog = []Instrument{
	{
		ID:       "piano",
		Name:     "Piano",
		Voices:   []string{"C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5"},
		Waveform: WaveformSine,
		Envelope: ADSR{Attack: 0.1, Decay: 0.2, Sustain: 0.7, Release: 0.8},
	},
	{
		ID:       "guitar",
		Name:     "Guitar",
		Voices:   []string{"E2", "A2", "D3", "G3", "B3", "E4"},
		Waveform: WaveformSawtooth,
		Envelope: ADSR{Attack: 0.05, Decay: 0.3, Sustain: 0.6, Release: 1.0},
	},
	{
		ID:       "drums",
		Name:     "Drums",
		Voices:   []string{"kick", "snare", "hihat", "crash", "tom1", "tom2"},
		Waveform: WaveformNoise,
		Envelope: ADSR{Attack: 0.01, Decay: 0.1, Sustain: 0.0, Release: 0.2},
	},
	{
		ID:       "violin",
		Name:     "Violin",
		Voices:   []string{"G3", "D4", "A4", "E5"},
		Waveform: WaveformSine,
		Envelope: ADSR{Attack: 0.2, Decay: 0.1, Sustain: 0.8, Release: 1.5},
	},
	{
		ID:       "flute",
		Name:     "Flute",
		Voices:   []string{"C5", "D5", "E5", "F5", "G5", "A5", "B5", "C6"},
		Waveform: WaveformSine,
		Envelope: ADSR{Attack: 0.3, Decay: 0.1, Sustain: 0.9, Release: 0.5},
	},
	{
		ID:       "saxophone",
		Name:     "Saxophone",
		Voices:   []string{"Bb3", "C4", "D4", "F4", "G4", "A4", "Bb4", "C5"},
		Waveform: WaveformSawtooth,
		Envelope: ADSR{Attack: 0.15, Decay: 0.2, Sustain: 0.7, Release: 1.2},
	},
}

// Catalog returns the fixed instrument set in order.
func Catalog() []Instrument {
	out := make([]Instrument, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the instrument with the given id.
func Lookup(id string) (Instrument, bool) {
	for _, inst := range catalog {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instrument{}, false
}

// noteFrequencies maps note names to frequencies in Hz.
var noteFrequencies = map[string]float64{
	"E2":  82.41,
	"A2":  110.00,
	"D3":  146.83,
	"G3":  196.00,
	"Bb3": 233.08,
	"B3":  246.94,
	"C4":  261.63,
	"D4":  293.66,
	"E4":  329.63,
	"F4":  349.23,
	"G4":  392.00,
	"A4":  440.00,
	"Bb4": 466.16,
	"B4":  493.88,
	"C5":  523.25,
	"D5":  587.33,
	"E5":  659.25,
	"F5":  698.46,
	"G5":  783.99,
	"A5":  880.00,
	"B5":  987.77,
	"C6":  1046.50,
}

// NoteFrequency converts a note name to its frequency. Unknown names
// fall back to A4 (440 Hz).
func NoteFrequency(note string) float64 {
	if f, ok := noteFrequencies[note]; ok {
		return f
	}
	return 440.0
}
