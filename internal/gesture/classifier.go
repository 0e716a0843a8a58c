// Package gesture turns raw hand landmark geometry into discrete,
// debounced gesture decisions.
package gesture

import (
	"github.com/ayusman/gesturebeats/internal/detector"
)

// Symbol identifies one of the fixed playable hand poses.
type Symbol string

const (
	SymbolPeace    Symbol = "peace"
	SymbolFist     Symbol = "fist"
	SymbolOpenPalm Symbol = "open_palm"
	SymbolThumbsUp Symbol = "thumbs_up"
	SymbolRockHorn Symbol = "rock_horn"
	SymbolPinch    Symbol = "pinch"
	SymbolNone     Symbol = "none"
)

// Symbols lists the playable gestures in their fixed evaluation order.
// SymbolNone is not a playable gesture.
func Symbols() []Symbol {
	return []Symbol{
		SymbolPeace,
		SymbolFist,
		SymbolOpenPalm,
		SymbolThumbsUp,
		SymbolRockHorn,
		SymbolPinch,
	}
}

// Observation is the instantaneous per-frame rule result for one hand,
// before temporal smoothing.
type Observation struct {
	Symbol     Symbol  `json:"symbol"`
	Confidence float64 `json:"confidence"`
}

// minConfidence is the floor below which a frame counts as no gesture.
const minConfidence = 0.5

// Classifier evaluates the gesture rules against a single landmark
// frame. It holds no state; all temporal behavior lives in Debouncer.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify evaluates all gesture rules against the landmarks and
// returns the highest-confidence result. Results below the confidence
// floor, and missing or malformed frames, yield SymbolNone at 0.
func (c *Classifier) Classify(h *detector.HandLandmarks) Observation {
	if !h.Valid() {
		return Observation{Symbol: SymbolNone}
	}

	ext := h.FingerExtensions()

	best := Observation{Symbol: SymbolNone}
	for _, sym := range Symbols() {
		conf := evaluate(sym, h, ext)
		if conf > best.Confidence {
			best = Observation{Symbol: sym, Confidence: conf}
		}
	}

	if best.Confidence < minConfidence {
		return Observation{Symbol: SymbolNone}
	}
	return best
}
