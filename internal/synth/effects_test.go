package synth

import (
	"math"
	"testing"
)

func TestChain_Set(t *testing.T) {
	var c Chain

	if !c.Set(EffectReverb, true) {
		t.Error("expected reverb to be a known effect")
	}
	if !c.Reverb {
		t.Error("expected reverb to be enabled")
	}

	if c.Set("chorus", true) {
		t.Error("expected unknown effect name to be rejected")
	}
}

func TestChain_ApplyDisabled(t *testing.T) {
	var c Chain

	buf := NewBuffer()
	buf.Right[0] = 0.5
	buf.Right[100] = -0.25

	c.Apply(buf)

	if buf.Right[0] != 0.5 || buf.Right[100] != -0.25 {
		t.Error("expected a disabled chain to leave the buffer untouched")
	}
}

func TestChain_Reverb(t *testing.T) {
	c := Chain{Reverb: true}

	// A single impulse grows a decaying echo tail at the tap interval.
	buf := NewBuffer()
	buf.Left[0] = 1.0

	c.Apply(buf)

	if got := buf.Left[reverbDelaySamples]; math.Abs(got-reverbCoefficient) > 1e-9 {
		t.Errorf("expected first echo %f at tap, got %f", reverbCoefficient, got)
	}
	if got := buf.Left[2*reverbDelaySamples]; math.Abs(got-reverbCoefficient*reverbCoefficient) > 1e-9 {
		t.Errorf("expected second echo %f, got %f", reverbCoefficient*reverbCoefficient, got)
	}
}

func TestChain_Distortion(t *testing.T) {
	c := Chain{Distortion: true}

	buf := NewBuffer()
	for i := range buf.Right {
		buf.Right[i] = 10 // far above unity
	}

	c.Apply(buf)

	// tanh saturation bounds output by 1/drive regardless of input.
	for i, v := range buf.Right {
		if math.Abs(v) > 1/distortionDrive+1e-9 {
			t.Fatalf("sample %d exceeds saturation bound: %f", i, v)
		}
	}
}

func TestChain_FixedOrder(t *testing.T) {
	// Distortion runs last, so the combined output stays inside the
	// saturation bound no matter how much gain the delays add.
	c := Chain{Reverb: true, Delay: true, Distortion: true}

	buf := NewBuffer()
	for i := range buf.Left {
		buf.Left[i] = 1.0
	}

	c.Apply(buf)

	for i, v := range buf.Left {
		if math.Abs(v) > 1/distortionDrive+1e-9 {
			t.Fatalf("sample %d exceeds saturation bound with full chain: %f", i, v)
		}
	}
}

func TestChain_BothChannels(t *testing.T) {
	c := Chain{Reverb: true}

	buf := NewBuffer()
	buf.Left[0] = 1.0
	buf.Right[0] = 1.0

	c.Apply(buf)

	if buf.Left[reverbDelaySamples] != buf.Right[reverbDelaySamples] {
		t.Error("expected the effect to apply to both channels identically")
	}
}
