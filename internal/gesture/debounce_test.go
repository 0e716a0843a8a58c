package gesture

import (
	"testing"

	"github.com/ayusman/gesturebeats/internal/detector"
)

func TestDebouncer_PassThroughBeforeFull(t *testing.T) {
	d := NewDebouncer(5)

	// Until the window fills, each observation passes through as-is.
	for i := 0; i < 4; i++ {
		got := d.Update(detector.HandRight, Observation{Symbol: SymbolPeace, Confidence: 0.95})
		if got.Symbol != SymbolPeace || got.Confidence != 0.95 {
			t.Fatalf("frame %d: expected pass-through peace/0.95, got %+v", i, got)
		}
	}
}

func TestDebouncer_MajorityHolds(t *testing.T) {
	d := NewDebouncer(5)

	// Four fist frames, then one stray peace frame. Four of five
	// confident fist entries keep the decision on fist.
	for i := 0; i < 4; i++ {
		d.Update(detector.HandRight, Observation{Symbol: SymbolFist, Confidence: 0.9})
	}
	got := d.Update(detector.HandRight, Observation{Symbol: SymbolPeace, Confidence: 0.9})

	if got.Symbol != SymbolFist {
		t.Errorf("expected stray frame to be rejected, got %q", got.Symbol)
	}
	if got.Confidence != 0.9 {
		t.Errorf("expected mean confidence 0.9, got %f", got.Confidence)
	}
}

func TestDebouncer_Transition(t *testing.T) {
	d := NewDebouncer(5)

	for i := 0; i < 5; i++ {
		d.Update(detector.HandRight, Observation{Symbol: SymbolFist, Confidence: 0.9})
	}

	// Feed peace frames. With two of five the window has neither a
	// fist majority (3 remaining) still... fist keeps winning until
	// peace reaches at least half the window.
	var got Stable
	for i := 0; i < 3; i++ {
		got = d.Update(detector.HandRight, Observation{Symbol: SymbolPeace, Confidence: 0.95})
	}

	if got.Symbol != SymbolPeace {
		t.Errorf("expected transition to peace after majority, got %q", got.Symbol)
	}
}

func TestDebouncer_NoMajority(t *testing.T) {
	d := NewDebouncer(5)

	// Alternate gestures so no symbol reaches half the window.
	seq := []Symbol{SymbolFist, SymbolPeace, SymbolOpenPalm, SymbolFist, SymbolPeace}
	var got Stable
	for _, sym := range seq {
		got = d.Update(detector.HandRight, Observation{Symbol: sym, Confidence: 0.9})
	}

	if got.Symbol != SymbolNone {
		t.Errorf("expected no stable gesture without a majority, got %q", got.Symbol)
	}
}

func TestDebouncer_LowConfidenceNoSupport(t *testing.T) {
	d := NewDebouncer(4)

	// Entries at or below the confidence floor never count as support,
	// even when they dominate the vote.
	var got Stable
	for i := 0; i < 4; i++ {
		got = d.Update(detector.HandRight, Observation{Symbol: SymbolPinch, Confidence: 0.5})
	}

	if got.Symbol != SymbolNone {
		t.Errorf("expected low-confidence window to yield none, got %q", got.Symbol)
	}
}

func TestDebouncer_HandsIndependent(t *testing.T) {
	d := NewDebouncer(3)

	for i := 0; i < 3; i++ {
		d.Update(detector.HandLeft, Observation{Symbol: SymbolFist, Confidence: 0.9})
	}

	// The right hand window is still empty; its first observation
	// passes through untouched by the left hand's history.
	got := d.Update(detector.HandRight, Observation{Symbol: SymbolPeace, Confidence: 0.95})
	if got.Symbol != SymbolPeace {
		t.Errorf("expected independent right-hand window, got %q", got.Symbol)
	}
}

func TestDebouncer_TieBreakDeterministic(t *testing.T) {
	// Equal votes for peace and fist resolve by fixed symbol order, so
	// repeated runs always produce the same winner.
	run := func() Symbol {
		d := NewDebouncer(4)
		var got Stable
		seq := []Symbol{SymbolFist, SymbolPeace, SymbolFist, SymbolPeace}
		for _, sym := range seq {
			got = d.Update(detector.HandRight, Observation{Symbol: sym, Confidence: 0.9})
		}
		return got.Symbol
	}

	first := run()
	if first != SymbolPeace {
		t.Errorf("expected tie to resolve to peace by fixed order, got %q", first)
	}
	for i := 0; i < 10; i++ {
		if got := run(); got != first {
			t.Fatalf("expected deterministic tie-break, got %q then %q", first, got)
		}
	}
}

func TestDebouncer_Reset(t *testing.T) {
	d := NewDebouncer(3)

	for i := 0; i < 3; i++ {
		d.Update(detector.HandRight, Observation{Symbol: SymbolFist, Confidence: 0.9})
	}
	d.Reset()

	got := d.Update(detector.HandRight, Observation{Symbol: SymbolPeace, Confidence: 0.95})
	if got.Symbol != SymbolPeace {
		t.Errorf("expected pass-through after reset, got %q", got.Symbol)
	}
}
