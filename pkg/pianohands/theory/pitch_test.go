package theory

import "testing"

func TestIsBlackKey(t *testing.T) {
	tests := []struct {
		pitch int
		black bool
	}{
		{60, false}, // C4
		{61, true},  // C#4
		{63, true},  // D#4
		{64, false}, // E4
		{66, true},  // F#4
		{68, true},  // G#4
		{70, true},  // A#4
		{71, false}, // B4
		{72, false}, // C5
	}
	for _, tt := range tests {
		if got := IsBlackKey(tt.pitch); got != tt.black {
			t.Errorf("IsBlackKey(%d) = %v, expected %v", tt.pitch, got, tt.black)
		}
	}
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		pitch int
		name  string
	}{
		{60, "C4"},
		{61, "C#4"},
		{69, "A4"},
		{72, "C5"},
		{21, "A0"},
		{108, "C8"},
	}
	for _, tt := range tests {
		if got := NoteName(tt.pitch); got != tt.name {
			t.Errorf("NoteName(%d) = %q, expected %q", tt.pitch, got, tt.name)
		}
	}
}

func TestOctave(t *testing.T) {
	if got := Octave(60); got != 4 {
		t.Errorf("Octave(60) = %d, expected 4", got)
	}
	if got := Octave(21); got != 0 {
		t.Errorf("Octave(21) = %d, expected 0", got)
	}
}

func TestIntervals(t *testing.T) {
	got := Intervals([]int{60, 62, 59, 59})
	want := []int{2, -3, 0}
	if len(got) != len(want) {
		t.Fatalf("Intervals length = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Intervals[%d] = %d, expected %d", i, got[i], want[i])
		}
	}

	if Intervals([]int{60}) != nil {
		t.Error("Intervals of a single pitch should be nil")
	}
	if Intervals(nil) != nil {
		t.Error("Intervals of nil should be nil")
	}
}

func TestIsStepwise(t *testing.T) {
	for _, iv := range []int{1, -1, 2, -2} {
		if !IsStepwise(iv) {
			t.Errorf("IsStepwise(%d) should be true", iv)
		}
	}
	for _, iv := range []int{0, 3, -3, 12} {
		if IsStepwise(iv) {
			t.Errorf("IsStepwise(%d) should be false", iv)
		}
	}
}
