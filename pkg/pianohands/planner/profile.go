// Package planner assigns fingers 1..5 to a hand-local note stream
// by a dynamic program over (note, finger) states. Transition costs
// are integers parameterized by the recognized pattern context and a
// difficulty profile, so outputs are exactly reproducible.
package planner

import "github.com/hritwiksinha/PianoHands/pkg/models"

// Profile is the calibrated cost regime for one difficulty level.
// All values are additive cost units.
type Profile struct {
	ThumbCrossingPenalty  int
	PositionChangePenalty int
	Finger4Penalty        int
	Finger5Penalty        int
	StretchPenalty        int // per extra semitone
	MaxComfortableSpan    int // semitones
	PreferSimplePatterns  bool
	AllowThumbOnBlack     bool
}

var profiles = map[models.Difficulty]Profile{
	models.Beginner: {
		ThumbCrossingPenalty:  80,
		PositionChangePenalty: 60,
		Finger4Penalty:        15,
		Finger5Penalty:        10,
		StretchPenalty:        25,
		MaxComfortableSpan:    5,
		PreferSimplePatterns:  true,
		AllowThumbOnBlack:     false,
	},
	models.Intermediate: {
		ThumbCrossingPenalty:  30,
		PositionChangePenalty: 30,
		Finger4Penalty:        5,
		Finger5Penalty:        5,
		StretchPenalty:        12,
		MaxComfortableSpan:    7,
		PreferSimplePatterns:  false,
		AllowThumbOnBlack:     false,
	},
	models.Advanced: {
		ThumbCrossingPenalty:  10,
		PositionChangePenalty: 15,
		Finger4Penalty:        0,
		Finger5Penalty:        0,
		StretchPenalty:        5,
		MaxComfortableSpan:    9,
		PreferSimplePatterns:  false,
		AllowThumbOnBlack:     true,
	},
}

// ProfileFor returns the cost profile of a difficulty level.
func ProfileFor(d models.Difficulty) Profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[models.Intermediate]
}
