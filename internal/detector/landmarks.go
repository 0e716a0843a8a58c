// Package detector provides the hand landmark data model shared by the
// gesture classifier and the frame intake surface. Landmark extraction
// itself happens in an external tracking process; this package only
// describes what arrives per frame.
package detector

import (
	"math"
	"time"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Hand identifies which hand a landmark frame belongs to.
type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// Hands lists both hand identities in a fixed order.
func Hands() [2]Hand {
	return [2]Hand{HandLeft, HandRight}
}

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized image coordinates, Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand.
type HandLandmarks struct {
	Points [NumLandmarks]Point3D `json:"points"`
	Hand   Hand                  `json:"hand"`
	Score  float64               `json:"score"`
}

// FramePair is the per-frame input from the tracking collaborator.
// Either side may be absent when the hand is not in view.
type FramePair struct {
	Left      *HandLandmarks `json:"left,omitempty"`
	Right     *HandLandmarks `json:"right,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ByHand returns the landmark frame for the given hand, or nil.
func (f *FramePair) ByHand(hand Hand) *HandLandmarks {
	if hand == HandLeft {
		return f.Left
	}
	return f.Right
}

// Distance calculates the Euclidean distance between two 3D points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Valid reports whether the landmarks form a usable frame. A malformed
// frame (NaN or infinite coordinates) is treated as no observation.
func (h *HandLandmarks) Valid() bool {
	if h == nil {
		return false
	}
	for i := 0; i < NumLandmarks; i++ {
		p := h.Points[i]
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) ||
			math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			return false
		}
	}
	return true
}

// minSegment is the minimum tip-PIP and PIP-MCP length for a finger to
// count as extended. A nearly-straight curled finger can place its tip
// slightly above the PIP; the segment check rejects it.
const minSegment = 0.02

// FingerExtensions derives the five finger-extension booleans in order
// thumb, index, middle, ring, pinky.
//
// The thumb is extended when its tip deviates further horizontally from
// the wrist than the IP joint does. The other fingers are extended when
// the tip sits above both the PIP and MCP joints (image Y grows
// downward) with minimum segment lengths enforced.
func (h *HandLandmarks) FingerExtensions() [5]bool {
	var ext [5]bool

	wrist := h.Points[Wrist]
	thumbTip := h.Points[ThumbTip]
	thumbIP := h.Points[ThumbIP]
	ext[0] = math.Abs(thumbTip.X-wrist.X) > math.Abs(thumbIP.X-wrist.X)

	tips := [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}
	pips := [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

	for i := 0; i < 4; i++ {
		tip := h.Points[tips[i]]
		pip := h.Points[pips[i]]
		mcp := h.Points[mcps[i]]

		ext[i+1] = tip.Y < pip.Y && tip.Y < mcp.Y &&
			Distance(tip, pip) >= minSegment &&
			Distance(pip, mcp) >= minSegment
	}

	return ext
}
