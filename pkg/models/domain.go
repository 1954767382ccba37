package models

import "strings"

// Hand identifies which hand plays a note. Staff 1 maps to the right
// hand, staff 2 to the left.
type Hand int

const (
	RightHand Hand = iota
	LeftHand
)

func (h Hand) String() string {
	if h == LeftHand {
		return "LH"
	}
	return "RH"
}

// HandForStaff derives the hand from a staff number.
func HandForStaff(staff int) Hand {
	if staff == 2 {
		return LeftHand
	}
	return RightHand
}

// Note is a single pitched event of the score. Notes are immutable
// within the analysis core; both pipeline stages only read them.
type Note struct {
	Pitch         int     // MIDI number, 0..127, middle C = 60
	Duration      float64 // beat units, > 0
	Voice         int
	Staff         int // 1 = upper/RH, 2 = lower/LH
	Hand          Hand
	MeasureNumber int
	Beat          float64 // position within the measure

	IsChord     bool
	IsGrace     bool
	IsRest      bool
	HasSlur     bool
	HasTrill    bool
	HasMordent  bool
	HasTurn     bool
	HasAccent   bool
	HasStaccato bool
	TieStart    bool
	TieStop     bool
	SlurStart   bool
	SlurStop    bool
}

// PatternType labels a recognized figure in a hand-local note stream.
type PatternType int

const (
	PatternUnknown PatternType = iota
	PatternScale
	PatternArpeggio
	PatternRepeated
	PatternLeap
	PatternChordal
	PatternMelodic
	PatternAlberti
	PatternOrnamented
	PatternOstinato
	PatternPolyphonic
)

var patternNames = map[PatternType]string{
	PatternUnknown:    "unknown",
	PatternScale:      "scale",
	PatternArpeggio:   "arpeggio",
	PatternRepeated:   "repeated",
	PatternLeap:       "leap",
	PatternChordal:    "chordal",
	PatternMelodic:    "melodic",
	PatternAlberti:    "alberti",
	PatternOrnamented: "ornamented",
	PatternOstinato:   "ostinato",
	PatternPolyphonic: "polyphonic",
}

func (p PatternType) String() string {
	if s, ok := patternNames[p]; ok {
		return s
	}
	return "unknown"
}

// SegmentFeatures carries pattern-specific attributes. Zero values
// mean the attribute does not apply to the segment's type.
type SegmentFeatures struct {
	Direction     string // ascending, descending, bidirectional
	ScaleType     string // chromatic, major, minor, pentatonic, modal
	ChordType     string // major, minor, diminished, augmented, seventh
	Root          int    // pitch class of the chord root
	Inversion     int    // 0 = root position
	OrnamentType  string // trill, mordent, turn, grace
	Style         string // cantabile, expressive, lyrical, neutral
	Contour       string // jagged, arch, valley, linear
	RepeatKind    string // single, alternating
	RepeatCount   int
	PatternLength int // ostinato/alberti cell length
}

// PatternSegment is a contiguous, labeled run of the hand-local
// stream. Start and End indices are inclusive.
type PatternSegment struct {
	StartIndex int
	EndIndex   int
	Type       PatternType
	Confidence float64
	Hand       Hand
	Features   SegmentFeatures
}

// Len returns the number of notes the segment covers.
func (s PatternSegment) Len() int {
	return s.EndIndex - s.StartIndex + 1
}

// Contains reports whether the hand-local note index falls inside
// the segment.
func (s PatternSegment) Contains(idx int) bool {
	return idx >= s.StartIndex && idx <= s.EndIndex
}

// FingeringSolution is the planner output for one note stream.
// Fingers and Reasons are aligned to the input order.
type FingeringSolution struct {
	Fingers   []int
	TotalCost int
	Reasons   [][]string
}

// Difficulty selects the cost profile of the planner.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Advanced:
		return "advanced"
	default:
		return "intermediate"
	}
}

// ParseDifficulty maps a difficulty name to its value. Unrecognized
// names fall back to intermediate.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner
	case "advanced":
		return Advanced
	default:
		return Intermediate
	}
}

// AnalysisResult is the merged two-hand output of the pipeline.
type AnalysisResult struct {
	Difficulty Difficulty
	Solution   FingeringSolution
	Segments   []PatternSegment
}

// StoredAnalysis is a persisted analysis with its per-note labels
// and recognized segments.
type StoredAnalysis struct {
	ID         string
	Title      string
	Difficulty string
	TotalCost  int
	NoteCount  int
	Fingerings []StoredFingering
	Segments   []StoredSegment
}

// StoredFingering is one persisted note label.
type StoredFingering struct {
	NoteIndex int
	Pitch     int
	Finger    int
	Hand      string
	Reasons   []string
}

// StoredSegment is one persisted pattern segment.
type StoredSegment struct {
	StartIndex int
	EndIndex   int
	Type       string
	Confidence float64
	Hand       string
}
