// Package ingest decodes Standard MIDI Files into the note stream
// the analysis core consumes. Decoding stays upstream of the core:
// parse errors surface here and never propagate into the pipeline.
package ingest

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/hritwiksinha/PianoHands/pkg/models"
	"gitlab.com/gomidi/midi/v2/smf"
)

// middleC splits single-track files into hands when no staff
// information exists.
const middleC = 60

type rawNote struct {
	tick     int64
	duration float64 // beats
	pitch    int
	track    int
	channel  int
}

type meterChange struct {
	tick        int64
	beatsPerBar float64
}

// ReadSMF decodes the score at path into an ordered, rest-free note
// stream. When several tracks carry notes, the first of them maps to
// staff 1 and the rest to staff 2; when only one track carries notes,
// it splits at middle C.
func ReadSMF(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading score file: %w", err)
	}
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return notesFromSMF(s)
}

func notesFromSMF(s *smf.SMF) ([]models.Note, error) {
	res := float64(480)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		res = float64(mt.Ticks4th())
	}

	var raw []rawNote
	var meters []meterChange
	noteTracks := map[int]bool{}

	for ti, track := range s.Tracks {
		var abs int64
		open := map[uint8]int64{} // pitch -> start tick
		openCh := map[uint8]uint8{}
		for _, ev := range track {
			abs += int64(ev.Delta)
			var ch, key, vel uint8
			var num, denom uint8
			msg := ev.Message
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				open[key] = abs
				openCh[key] = ch
			case msg.GetNoteEnd(&ch, &key):
				start, ok := open[key]
				if !ok {
					continue
				}
				delete(open, key)
				dur := float64(abs-start) / res
				if dur <= 0 {
					dur = 1.0 / 16
				}
				raw = append(raw, rawNote{
					tick:     start,
					duration: dur,
					pitch:    int(key),
					track:    ti,
					channel:  int(openCh[key]),
				})
				noteTracks[ti] = true
			case msg.GetMetaMeter(&num, &denom):
				if denom > 0 {
					meters = append(meters, meterChange{
						tick:        abs,
						beatsPerBar: float64(num) * 4 / float64(denom),
					})
				}
			}
		}
		// Notes left dangling at end of track get a quarter length.
		for key, start := range open {
			raw = append(raw, rawNote{
				tick:     start,
				duration: 1,
				pitch:    int(key),
				track:    ti,
				channel:  int(openCh[key]),
			})
			noteTracks[ti] = true
		}
	}

	if len(raw) == 0 {
		return nil, nil
	}

	sort.Slice(meters, func(i, j int) bool { return meters[i].tick < meters[j].tick })
	sort.Slice(raw, func(i, j int) bool {
		if raw[i].tick != raw[j].tick {
			return raw[i].tick < raw[j].tick
		}
		if raw[i].track != raw[j].track {
			return raw[i].track < raw[j].track
		}
		return raw[i].pitch < raw[j].pitch
	})

	firstNoteTrack := -1
	for ti := range s.Tracks {
		if noteTracks[ti] {
			firstNoteTrack = ti
			break
		}
	}
	multiTrack := len(noteTracks) > 1

	grid := newMeasureGrid(meters, res)
	notes := make([]models.Note, 0, len(raw))
	for i, r := range raw {
		staff := 1
		if multiTrack {
			if r.track != firstNoteTrack {
				staff = 2
			}
		} else if r.pitch < middleC {
			staff = 2
		}

		measure, beat := grid.locate(r.tick)
		n := models.Note{
			Pitch:         r.pitch,
			Duration:      r.duration,
			Voice:         r.channel + 1,
			Staff:         staff,
			Hand:          models.HandForStaff(staff),
			MeasureNumber: measure,
			Beat:          beat,
			IsChord:       i > 0 && raw[i-1].tick == r.tick && sameStaff(raw[i-1], r, multiTrack, firstNoteTrack),
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func sameStaff(a, b rawNote, multiTrack bool, firstNoteTrack int) bool {
	if !multiTrack {
		return (a.pitch < middleC) == (b.pitch < middleC)
	}
	return (a.track == firstNoteTrack) == (b.track == firstNoteTrack)
}

// measureGrid converts absolute ticks to (measure, beat) under the
// file's time signature changes; 4/4 is assumed until the first
// change.
type measureGrid struct {
	res    float64
	meters []meterChange
}

func newMeasureGrid(meters []meterChange, res float64) *measureGrid {
	if len(meters) == 0 || meters[0].tick > 0 {
		meters = append([]meterChange{{tick: 0, beatsPerBar: 4}}, meters...)
	}
	return &measureGrid{res: res, meters: meters}
}

func (g *measureGrid) locate(tick int64) (int, float64) {
	measure := 1
	for i, m := range g.meters {
		endTick := int64(-1)
		if i+1 < len(g.meters) {
			endTick = g.meters[i+1].tick
		}
		if endTick >= 0 && tick >= endTick {
			spanBeats := float64(endTick-m.tick) / g.res
			measure += int(spanBeats / m.beatsPerBar)
			continue
		}
		beats := float64(tick-m.tick) / g.res
		bars := int(beats / m.beatsPerBar)
		return measure + bars, beats - float64(bars)*m.beatsPerBar
	}
	return measure, 0
}
