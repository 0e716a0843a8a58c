package gesture

import (
	"github.com/ayusman/gesturebeats/internal/detector"
)

// DefaultWindow is the default debounce window length in frames.
const DefaultWindow = 5

// Stable is the debounced per-hand gesture decision at a point in time.
type Stable struct {
	Symbol     Symbol  `json:"symbol"`
	Confidence float64 `json:"confidence"`
}

// ring is a fixed-length observation window with append-and-evict
// semantics.
type ring struct {
	obs   []Observation
	next  int
	count int
}

func (r *ring) push(o Observation) {
	r.obs[r.next] = o
	r.next = (r.next + 1) % len(r.obs)
	if r.count < len(r.obs) {
		r.count++
	}
}

// Debouncer smooths per-frame observations into stable decisions using
// a confidence-weighted majority vote over a fixed window. Each hand
// has a fully independent window.
//
// The debouncer is owned by the frame-processing goroutine and is not
// safe for concurrent use.
type Debouncer struct {
	window int
	hands  map[detector.Hand]*ring
}

// NewDebouncer creates a Debouncer with the given window length.
// Non-positive lengths fall back to DefaultWindow.
func NewDebouncer(window int) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		window: window,
		hands:  make(map[detector.Hand]*ring),
	}
}

// Update appends an observation to the hand's window and returns the
// debounced decision.
//
// Until the window fills, observations pass through unchanged. Once
// full, votes are accumulated per gesture weighted by confidence; the
// top candidate is accepted only if it appears with confidence above
// 0.5 in at least half the window, otherwise the decision is no
// gesture. The reported confidence is the mean confidence of the
// winner's observations in the window.
func (d *Debouncer) Update(hand detector.Hand, o Observation) Stable {
	r := d.hands[hand]
	if r == nil {
		r = &ring{obs: make([]Observation, d.window)}
		d.hands[hand] = r
	}

	r.push(o)

	if r.count < d.window {
		return Stable{Symbol: o.Symbol, Confidence: o.Confidence}
	}

	votes := make(map[Symbol]float64, len(r.obs))
	support := make(map[Symbol]int, len(r.obs))
	confSum := make(map[Symbol]float64, len(r.obs))
	confN := make(map[Symbol]int, len(r.obs))

	for _, past := range r.obs {
		if past.Symbol == SymbolNone {
			continue
		}
		votes[past.Symbol] += past.Confidence
		confSum[past.Symbol] += past.Confidence
		confN[past.Symbol]++
		if past.Confidence > minConfidence {
			support[past.Symbol]++
		}
	}

	// Iterate the fixed symbol order so ties resolve deterministically.
	winner := SymbolNone
	var best float64
	for _, sym := range Symbols() {
		if v, ok := votes[sym]; ok && v > best {
			best = v
			winner = sym
		}
	}

	if winner == SymbolNone || 2*support[winner] < d.window {
		return Stable{Symbol: SymbolNone}
	}

	return Stable{
		Symbol:     winner,
		Confidence: confSum[winner] / float64(confN[winner]),
	}
}

// Reset clears all per-hand history.
func (d *Debouncer) Reset() {
	d.hands = make(map[detector.Hand]*ring)
}
