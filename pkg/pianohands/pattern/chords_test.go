package pattern

import "testing"

func TestAnalyzeChordTriads(t *testing.T) {
	tests := []struct {
		name      string
		pitches   []int
		chordType string
		root      int
		inversion int
	}{
		{"C major root", []int{60, 64, 67}, "major", 0, 0},
		{"C major first inversion", []int{64, 67, 72}, "major", 0, 1},
		{"C major second inversion", []int{67, 72, 76}, "major", 0, 2},
		{"A minor", []int{57, 60, 64}, "minor", 9, 0},
		{"B diminished", []int{59, 62, 65}, "diminished", 11, 0},
		{"C augmented", []int{60, 64, 68}, "augmented", 0, 0},
		{"broken C major", []int{60, 64, 67, 72, 76, 79}, "major", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := analyzeChord(tt.pitches)
			if !ok {
				t.Fatalf("expected a chord for %v", tt.pitches)
			}
			if info.chordType != tt.chordType {
				t.Errorf("chordType = %q, expected %q", info.chordType, tt.chordType)
			}
			if info.root != tt.root {
				t.Errorf("root = %d, expected %d", info.root, tt.root)
			}
			if info.inversion != tt.inversion {
				t.Errorf("inversion = %d, expected %d", info.inversion, tt.inversion)
			}
		})
	}
}

func TestAnalyzeChordSevenths(t *testing.T) {
	info, ok := analyzeChord([]int{60, 64, 67, 70})
	if !ok {
		t.Fatal("expected a seventh chord")
	}
	if info.chordType != "seventh" {
		t.Errorf("chordType = %q, expected seventh", info.chordType)
	}
	if info.root != 0 {
		t.Errorf("root = %d, expected 0", info.root)
	}
}

func TestAnalyzeChordRejects(t *testing.T) {
	rejects := [][]int{
		{60, 64},         // too few classes
		{60, 62, 64},     // stacked seconds
		{60, 62, 64, 66}, // whole-tone cluster
		{},
	}
	for _, pitches := range rejects {
		if _, ok := analyzeChord(pitches); ok {
			t.Errorf("expected no chord for %v", pitches)
		}
	}
}

func TestIdentifyScaleType(t *testing.T) {
	tests := []struct {
		name      string
		intervals []int
		direction string
		want      string
	}{
		{"chromatic", []int{1, 1, 1, 1}, "ascending", "chromatic"},
		{"major up", []int{2, 2, 1, 2, 2, 2, 1}, "ascending", "major"},
		{"major down", []int{-1, -2, -2, -2, -1, -2, -2}, "descending", "major"},
		{"natural minor", []int{2, 1, 2, 2, 1, 2, 2}, "ascending", "minor"},
		{"pentatonic", []int{2, 3, 2, 2, 3}, "ascending", "pentatonic"},
		{"modal", []int{2, 1, 2, 1}, "ascending", "modal"},
		{"empty", nil, "ascending", "modal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := identifyScaleType(tt.intervals, tt.direction); got != tt.want {
				t.Errorf("identifyScaleType = %q, expected %q", got, tt.want)
			}
		})
	}
}
