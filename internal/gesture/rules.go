package gesture

import (
	"math"

	"github.com/ayusman/gesturebeats/internal/detector"
)

// Geometric thresholds, in normalized image units.
const (
	peaceSeparationMin = 0.03
	peaceSeparationMax = 0.15
	pinchDistance      = 0.04
	nearPinchDistance  = 0.06
)

// evaluate dispatches to the rule for one gesture symbol. The switch is
// exhaustive over the playable set; adding a symbol without a rule is a
// compile-visible gap here rather than a silent lookup miss.
func evaluate(sym Symbol, h *detector.HandLandmarks, ext [5]bool) float64 {
	switch sym {
	case SymbolPeace:
		return scorePeace(h, ext)
	case SymbolFist:
		return scoreFist(ext)
	case SymbolOpenPalm:
		return scoreOpenPalm(ext)
	case SymbolThumbsUp:
		return scoreThumbsUp(h, ext)
	case SymbolRockHorn:
		return scoreRockHorn(ext)
	case SymbolPinch:
		return scorePinch(h, ext)
	}
	return 0
}

// scorePeace: index and middle extended, everything else folded. Full
// confidence requires a natural separation between the two raised
// tips; a fused or splayed pair still scores, but lower.
func scorePeace(h *detector.HandLandmarks, ext [5]bool) float64 {
	if !ext[1] || !ext[2] || ext[0] || ext[3] || ext[4] {
		return 0
	}
	sep := detector.Distance(h.Points[detector.IndexTip], h.Points[detector.MiddleTip])
	if sep >= peaceSeparationMin && sep <= peaceSeparationMax {
		return 0.95
	}
	return 0.7
}

// scoreFist: no digit extended.
func scoreFist(ext [5]bool) float64 {
	for _, e := range ext {
		if e {
			return 0
		}
	}
	return 0.9
}

// scoreOpenPalm: all five digits extended.
func scoreOpenPalm(ext [5]bool) float64 {
	for _, e := range ext {
		if !e {
			return 0
		}
	}
	return 0.9
}

// scoreThumbsUp: only the thumb extended. Full confidence requires the
// thumb tip above both its MCP and the wrist at a near-vertical angle.
func scoreThumbsUp(h *detector.HandLandmarks, ext [5]bool) float64 {
	if !ext[0] || ext[1] || ext[2] || ext[3] || ext[4] {
		return 0
	}
	tip := h.Points[detector.ThumbTip]
	mcp := h.Points[detector.ThumbMCP]
	wrist := h.Points[detector.Wrist]

	if tip.Y < mcp.Y && tip.Y < wrist.Y {
		dx := tip.X - wrist.X
		dy := tip.Y - wrist.Y
		if math.Abs(dx) < 0.5*math.Abs(dy) {
			return 0.95
		}
	}
	return 0.7
}

// scoreRockHorn: index and pinky extended, middle and ring folded.
func scoreRockHorn(ext [5]bool) float64 {
	if ext[1] && ext[4] && !ext[0] && !ext[2] && !ext[3] {
		return 0.9
	}
	return 0
}

// scorePinch works from the thumb-index tip distance directly rather
// than the extension booleans, which misread a pinching thumb. The
// remaining three fingers grade the result: extended reads as a
// deliberate pinch, folded as a grab, anything else is uncertain. A
// slightly open pinch scores at the confidence floor.
func scorePinch(h *detector.HandLandmarks, ext [5]bool) float64 {
	d := detector.Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexTip])

	switch {
	case d < pinchDistance:
		if ext[2] && ext[3] && ext[4] {
			return 0.95
		}
		if !ext[2] && !ext[3] && !ext[4] {
			return 0.85
		}
		return 0.7
	case d < nearPinchDistance:
		return 0.5
	}
	return 0
}
