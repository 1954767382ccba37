package pattern

import (
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"
)

// classifyWindow runs the priority-ordered decision tree over one
// window; the first matching arm wins.
func classifyWindow(notes []models.Note, f windowFeatures) (models.PatternType, float64, models.SegmentFeatures) {
	if t, conf, feats, ok := classifyOrnamented(notes, f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyAlberti(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyOstinato(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyPolyphonic(notes); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyChordal(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyScale(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyArpeggio(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyRepeated(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyLeap(f); ok {
		return t, conf, feats
	}
	if t, conf, feats, ok := classifyMelodic(f); ok {
		return t, conf, feats
	}
	return models.PatternUnknown, 0.5, models.SegmentFeatures{}
}

func classifyOrnamented(notes []models.Note, f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	if f.anyOrnament || f.anyGrace {
		subtype := "grace"
	scan:
		for _, n := range notes {
			switch {
			case n.HasTrill:
				subtype = "trill"
			case n.HasMordent:
				subtype = "mordent"
			case n.HasTurn:
				subtype = "turn"
			case n.IsGrace:
				subtype = "grace"
			default:
				continue
			}
			break scan
		}
		return models.PatternOrnamented, 1.0, models.SegmentFeatures{OrnamentType: subtype}, true
	}

	// An unmarked trill: very fast, narrow, strictly alternating.
	if f.durationMean < 0.125 && f.maxAbsInterval <= 2 && isAlternatingIntervals(f.intervals) {
		return models.PatternOrnamented, 0.75, models.SegmentFeatures{OrnamentType: "trill"}, true
	}
	return 0, 0, models.SegmentFeatures{}, false
}

// isAlternatingIntervals checks I[i+1] = -I[i] with every magnitude
// in the step range and nonzero.
func isAlternatingIntervals(intervals []int) bool {
	if len(intervals) < 2 {
		return false
	}
	for i, iv := range intervals {
		if iv == 0 || theory.Abs(iv) > 2 {
			return false
		}
		if i >= 1 && intervals[i-1] != -iv {
			return false
		}
	}
	return true
}

func classifyAlberti(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	if len(f.pitches) < 4 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	if f.firstStaff != 2 && f.pitches[0] >= 60 {
		return 0, 0, models.SegmentFeatures{}, false
	}

	groups := len(f.pitches) / 4
	matches := 0
	for g := 0; g < groups; g++ {
		p := f.pitches[g*4 : g*4+4]
		if p[0] < p[2] && p[2] < p[1] && theory.Abs(p[1]-p[3]) <= 1 {
			matches++
		}
	}
	ratio := theory.Ratio(matches, groups)
	if groups == 0 || ratio < 0.6 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	feats := models.SegmentFeatures{PatternLength: 4, RepeatCount: matches}
	return models.PatternAlberti, 0.6 + 0.35*ratio, feats, true
}

func classifyOstinato(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	n := len(f.pitches)
	maxLen := n / 3
	if maxLen > 8 {
		maxLen = 8
	}
	for l := 2; l <= maxLen; l++ {
		repeats := 1
		for start := l; start+l <= n; start += l {
			if !equalInts(f.pitches[:l], f.pitches[start:start+l]) {
				break
			}
			repeats++
		}
		if repeats >= 3 {
			conf := 0.7 + 0.05*float64(repeats)
			if conf > 0.95 {
				conf = 0.95
			}
			feats := models.SegmentFeatures{PatternLength: l, RepeatCount: repeats}
			return models.PatternOstinato, conf, feats, true
		}
	}
	return 0, 0, models.SegmentFeatures{}, false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func classifyPolyphonic(notes []models.Note) (models.PatternType, float64, models.SegmentFeatures, bool) {
	var voiceA, voiceB int
	var haveA, haveB bool
	for _, n := range notes {
		if !haveA {
			voiceA, haveA = n.Voice, true
			continue
		}
		if n.Voice != voiceA {
			voiceB, haveB = n.Voice, true
			break
		}
	}
	if !haveB {
		return 0, 0, models.SegmentFeatures{}, false
	}

	beatsA := make(map[int64]bool)
	beatsB := make(map[int64]bool)
	for _, n := range notes {
		switch n.Voice {
		case voiceA:
			beatsA[beatKey(n)] = true
		case voiceB:
			beatsB[beatKey(n)] = true
		}
	}
	inter := 0
	for k := range beatsA {
		if beatsB[k] {
			inter++
		}
	}
	larger := len(beatsA)
	if len(beatsB) > larger {
		larger = len(beatsB)
	}
	if theory.Ratio(inter, larger) >= 0.4 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	return models.PatternPolyphonic, 0.8, models.SegmentFeatures{}, true
}

func classifyChordal(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	if f.meanSimultaneity < 2 && f.maxSimultaneity < 3 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	feats := models.SegmentFeatures{}
	if info, ok := analyzeChord(f.pitches); ok {
		feats.ChordType = info.chordType
		feats.Root = info.root
		feats.Inversion = info.inversion
	}
	return models.PatternChordal, 0.9, feats, true
}

func classifyScale(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	if f.stepwiseRatio < 0.8 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	var direction string
	switch {
	case f.ascendingRatio > 0.75:
		direction = "ascending"
	case f.descendingRatio > 0.75:
		direction = "descending"
	case f.ascendingRatio > 0.5 && f.descendingRatio > 0.3:
		direction = "bidirectional"
	default:
		return 0, 0, models.SegmentFeatures{}, false
	}
	feats := models.SegmentFeatures{
		Direction: direction,
		ScaleType: identifyScaleType(f.intervals, direction),
	}
	return models.PatternScale, 0.92, feats, true
}

func classifyArpeggio(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	// Broken-chord motion is skips of a third or more; plain leap
	// ratio (>4 semitones) misses triad arpeggios built from thirds.
	skips := 0
	for _, iv := range f.intervals {
		if theory.Abs(iv) >= 3 {
			skips++
		}
	}
	if theory.Ratio(skips, len(f.intervals)) < 0.5 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	info, ok := analyzeChord(f.pitches)
	if !ok {
		return 0, 0, models.SegmentFeatures{}, false
	}
	direction := "ascending"
	if f.descendingRatio > f.ascendingRatio {
		direction = "descending"
	}
	feats := models.SegmentFeatures{
		Direction: direction,
		ChordType: info.chordType,
		Root:      info.root,
		Inversion: info.inversion,
	}
	return models.PatternArpeggio, 0.88, feats, true
}

func classifyRepeated(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	if f.pitchEntropy < 0.5 {
		run, best := 1, 1
		for i := 1; i < len(f.pitches); i++ {
			if f.pitches[i] == f.pitches[i-1] {
				run++
			} else {
				run = 1
			}
			if run > best {
				best = run
			}
		}
		if best >= 3 {
			conf := 0.7 + 0.05*float64(best)
			if conf > 0.95 {
				conf = 0.95
			}
			feats := models.SegmentFeatures{RepeatKind: "single", RepeatCount: best}
			return models.PatternRepeated, conf, feats, true
		}
	}

	if isStrictAlternation(f.pitches) {
		feats := models.SegmentFeatures{RepeatKind: "alternating", RepeatCount: len(f.pitches)}
		return models.PatternRepeated, 0.85, feats, true
	}
	return 0, 0, models.SegmentFeatures{}, false
}

// isStrictAlternation reports a window bouncing between exactly two
// distinct pitches.
func isStrictAlternation(pitches []int) bool {
	if len(pitches) < 4 {
		return false
	}
	a, b := pitches[0], pitches[1]
	if a == b {
		return false
	}
	for i, p := range pitches {
		want := a
		if i%2 == 1 {
			want = b
		}
		if p != want {
			return false
		}
	}
	return true
}

func classifyLeap(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	n := len(f.intervals)
	if f.maxAbsInterval <= 4 || float64(f.directionChanges) <= 0.4*float64(n) {
		return 0, 0, models.SegmentFeatures{}, false
	}

	contour := "linear"
	if float64(f.directionChanges) > 0.5*float64(n) {
		contour = "jagged"
	} else {
		firstSum, secondSum := 0, 0
		half := n / 2
		for i, iv := range f.intervals {
			if i < half {
				firstSum += iv
			} else {
				secondSum += iv
			}
		}
		switch {
		case firstSum > 0 && secondSum < 0:
			contour = "arch"
		case firstSum < 0 && secondSum > 0:
			contour = "valley"
		}
	}
	return models.PatternLeap, 0.8, models.SegmentFeatures{Contour: contour}, true
}

func classifyMelodic(f windowFeatures) (models.PatternType, float64, models.SegmentFeatures, bool) {
	if !f.anySlur && f.durationVariance <= 0.3 {
		return 0, 0, models.SegmentFeatures{}, false
	}
	style := "neutral"
	switch {
	case f.anySlur && f.durationMean > 1:
		style = "cantabile"
	case f.durationVariance > 0.4:
		style = "expressive"
	case f.anySlur:
		style = "lyrical"
	}
	return models.PatternMelodic, 0.7, models.SegmentFeatures{Style: style}, true
}
