package synth

import "math"

// Effect parameters. The taps are short feedback delays; distortion is
// a fixed-drive soft clip.
const (
	reverbDelaySamples = SampleRate / 10 // ~100 ms tap
	reverbCoefficient  = 0.3
	delayDelaySamples  = SampleRate / 4 // ~250 ms tap
	delayFeedback      = 0.3
	distortionDrive    = 2.0
)

// EffectName identifies a toggleable effect.
type EffectName string

const (
	EffectReverb     EffectName = "reverb"
	EffectDelay      EffectName = "delay"
	EffectDistortion EffectName = "distortion"
)

// Chain is the set of independently toggled effects applied to an
// already panned and scaled buffer. When several are enabled they run
// in fixed order: reverb, delay, distortion.
//
// The chain is owned by the frame-processing goroutine; toggles are
// marshalled there rather than flipped concurrently.
type Chain struct {
	Reverb     bool
	Delay      bool
	Distortion bool
}

// Set toggles one effect by name. Unknown names are ignored and
// reported false.
func (c *Chain) Set(name EffectName, enabled bool) bool {
	switch name {
	case EffectReverb:
		c.Reverb = enabled
	case EffectDelay:
		c.Delay = enabled
	case EffectDistortion:
		c.Distortion = enabled
	default:
		return false
	}
	return true
}

// Apply runs the enabled effects over both channels in place.
func (c *Chain) Apply(b *Buffer) {
	if c.Reverb {
		feedbackDelay(b.Left, reverbDelaySamples, reverbCoefficient)
		feedbackDelay(b.Right, reverbDelaySamples, reverbCoefficient)
	}
	if c.Delay {
		feedbackDelay(b.Left, delayDelaySamples, delayFeedback)
		feedbackDelay(b.Right, delayDelaySamples, delayFeedback)
	}
	if c.Distortion {
		softClip(b.Left)
		softClip(b.Right)
	}
}

// feedbackDelay applies a single-tap feedback delay:
// y[i] = x[i] + coeff*y[i-delay].
func feedbackDelay(samples []float64, delay int, coeff float64) {
	for i := delay; i < len(samples); i++ {
		samples[i] += coeff * samples[i-delay]
	}
}

// softClip applies hyperbolic-tangent saturation at fixed drive,
// normalized back so unity input stays near unity.
func softClip(samples []float64) {
	for i, v := range samples {
		samples[i] = math.Tanh(v*distortionDrive) / distortionDrive
	}
}
