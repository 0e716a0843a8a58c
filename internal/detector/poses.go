package detector

// Preset landmark poses for the six playable gestures. Used by the
// classifier and pipeline tests in place of a live tracking process.
//
// All poses share a wrist at (0.5, 0.8) with image Y growing downward.
// Finger columns sit at X 0.56 (index), 0.50 (middle), 0.45 (ring) and
// 0.40 (pinky).

var fingerColumns = [4]float64{0.56, 0.50, 0.45, 0.40}

var fingerJoints = [4][4]int{
	{IndexMCP, IndexPIP, IndexDIP, IndexTip},
	{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip},
	{RingMCP, RingPIP, RingDIP, RingTip},
	{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip},
}

// basePose returns a hand skeleton with every finger curled into the
// palm and the thumb folded across it.
func basePose(hand Hand) HandLandmarks {
	h := HandLandmarks{Hand: hand, Score: 0.95}
	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.70, Z: -0.01}
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.66, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.02}

	for i, x := range fingerColumns {
		j := fingerJoints[i]
		h.Points[j[0]] = Point3D{X: x, Y: 0.68, Z: -0.02}
		h.Points[j[1]] = Point3D{X: x, Y: 0.66, Z: -0.05}
		h.Points[j[2]] = Point3D{X: x - 0.02, Y: 0.69, Z: -0.04}
		h.Points[j[3]] = Point3D{X: x - 0.03, Y: 0.72, Z: -0.02}
	}
	return h
}

// extendFinger straightens finger i (0=index .. 3=pinky) upward so the
// tip lands at tipY.
func extendFinger(h *HandLandmarks, i int, tipY float64) {
	x := fingerColumns[i]
	j := fingerJoints[i]
	h.Points[j[0]] = Point3D{X: x, Y: 0.68}
	h.Points[j[1]] = Point3D{X: x, Y: 0.55}
	h.Points[j[2]] = Point3D{X: x, Y: tipY + 0.10}
	h.Points[j[3]] = Point3D{X: x, Y: tipY}
}

// extendThumbSide swings the thumb out to the side of the palm.
func extendThumbSide(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.65, Y: 0.66, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.70, Y: 0.62, Z: 0.03}
}

// PeaceLandmarks returns a peace sign: index and middle extended with a
// natural tip separation, everything else folded.
func PeaceLandmarks(hand Hand) HandLandmarks {
	h := basePose(hand)
	extendFinger(&h, 0, 0.35)
	extendFinger(&h, 1, 0.33)
	h.Points[MiddleMCP].X = 0.51
	h.Points[MiddlePIP].X = 0.51
	h.Points[MiddleDIP].X = 0.51
	h.Points[MiddleTip].X = 0.51
	return h
}

// FistLandmarks returns a closed fist.
func FistLandmarks(hand Hand) HandLandmarks {
	return basePose(hand)
}

// OpenPalmLandmarks returns an open palm with all five digits extended.
func OpenPalmLandmarks(hand Hand) HandLandmarks {
	h := basePose(hand)
	extendThumbSide(&h)
	extendFinger(&h, 0, 0.35)
	extendFinger(&h, 1, 0.28)
	extendFinger(&h, 2, 0.35)
	extendFinger(&h, 3, 0.42)
	return h
}

// ThumbsUpLandmarks returns a thumbs up: thumb pointing up, fingers
// curled.
func ThumbsUpLandmarks(hand Hand) HandLandmarks {
	h := basePose(hand)
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65}
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.50}
	h.Points[ThumbTip] = Point3D{X: 0.60, Y: 0.35}
	return h
}

// RockHornLandmarks returns a rock horn: index and pinky extended,
// middle and ring curled.
func RockHornLandmarks(hand Hand) HandLandmarks {
	h := basePose(hand)
	extendFinger(&h, 0, 0.35)
	extendFinger(&h, 3, 0.40)
	return h
}

// PinchLandmarks returns a pinch: thumb and index tips touching, the
// remaining fingers extended.
func PinchLandmarks(hand Hand) HandLandmarks {
	h := basePose(hand)
	extendFinger(&h, 1, 0.30)
	extendFinger(&h, 2, 0.35)
	extendFinger(&h, 3, 0.42)

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.68}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.60, Z: -0.01}
	h.Points[ThumbTip] = Point3D{X: 0.56, Y: 0.55, Z: -0.01}

	h.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.68}
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.60}
	h.Points[IndexDIP] = Point3D{X: 0.56, Y: 0.57}
	h.Points[IndexTip] = Point3D{X: 0.555, Y: 0.555, Z: -0.01}
	return h
}

// PointingLandmarks returns an ambiguous pose (index extended only)
// that matches none of the playable gestures.
func PointingLandmarks(hand Hand) HandLandmarks {
	h := basePose(hand)
	extendFinger(&h, 0, 0.35)
	return h
}
