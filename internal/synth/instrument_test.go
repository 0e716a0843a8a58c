package synth

import (
	"testing"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 6 {
		t.Fatalf("expected 6 instruments, got %d", len(catalog))
	}

	for _, inst := range catalog {
		if len(inst.Voices) == 0 {
			t.Errorf("%s: expected at least one voice", inst.ID)
		}
		if _, ok := Lookup(inst.ID); !ok {
			t.Errorf("%s: expected lookup to succeed", inst.ID)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("banjo"); ok {
		t.Error("expected lookup of unknown instrument to fail")
	}
}

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		note string
		want float64
	}{
		{"A4", 440.00},
		{"C4", 261.63},
		{"E2", 82.41},
		{"Bb3", 233.08},
		{"C6", 1046.50},
	}

	for _, tt := range tests {
		if got := NoteFrequency(tt.note); got != tt.want {
			t.Errorf("%s: expected %f, got %f", tt.note, tt.want, got)
		}
	}
}

func TestNoteFrequency_UnknownDefaultsToA4(t *testing.T) {
	if got := NoteFrequency("H9"); got != 440.00 {
		t.Errorf("expected unknown note to default to 440 Hz, got %f", got)
	}
}
