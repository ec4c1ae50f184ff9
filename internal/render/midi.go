package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

const (
	ticksPerQuarter = 960
	pianoProgram    = 0
	pianoChannel    = 0
	trackName       = "magda-harmony"
)

type timedMessage struct {
	tick  uint32
	off   bool
	order int
	msg   midi.Message
}

func beatsToTicks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * ticksPerQuarter))
}

// WriteMIDI writes note events as a single-track Standard MIDI File with a
// tempo, a 4/4 meter and a piano program change.
func WriteMIDI(w io.Writer, events []models.NoteEvent, bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("invalid tempo: %d bpm", bpm)
	}

	timed := make([]timedMessage, 0, len(events)*2)
	for i, ev := range events {
		if ev.MidiNoteNumber < 0 || ev.MidiNoteNumber > 127 {
			return fmt.Errorf("note %d out of MIDI range: %d", i, ev.MidiNoteNumber)
		}
		key := uint8(ev.MidiNoteNumber)
		velocity := uint8(min(max(ev.Velocity, 1), 127))
		start := beatsToTicks(ev.StartBeats)
		end := beatsToTicks(ev.StartBeats + ev.DurationBeats)
		if end <= start {
			end = start + 1
		}
		timed = append(timed,
			timedMessage{tick: start, order: i, msg: midi.NoteOn(pianoChannel, key, velocity)},
			timedMessage{tick: end, off: true, order: i, msg: midi.NoteOff(pianoChannel, key)},
		)
	}
	// note-offs sort before note-ons on the same tick so repeated pitches retrigger
	sort.SliceStable(timed, func(i, j int) bool {
		if timed[i].tick != timed[j].tick {
			return timed[i].tick < timed[j].tick
		}
		if timed[i].off != timed[j].off {
			return timed[i].off
		}
		return timed[i].order < timed[j].order
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(trackName))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(float64(bpm)))
	tr.Add(0, midi.ProgramChange(pianoChannel, pianoProgram))

	var last uint32
	for _, tm := range timed {
		tr.Add(tm.tick-last, tm.msg)
		last = tm.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("failed to add MIDI track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write MIDI: %w", err)
	}
	return nil
}

// MIDIBytes renders note events to an in-memory MIDI file
func MIDIBytes(events []models.NoteEvent, bpm int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMIDI(&buf, events, bpm); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteMIDIFile renders note events to path
func WriteMIDIFile(path string, events []models.NoteEvent, bpm int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create MIDI file: %w", err)
	}
	if err := WriteMIDI(f, events, bpm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderComposition voices a composition's chords and writes them as MIDI
func RenderComposition(w io.Writer, comp *models.Composition) error {
	notes, err := ChordEventsToNoteEvents(comp.Chords, DefaultOctave, DefaultVelocity)
	if err != nil {
		return err
	}
	return WriteMIDI(w, notes, comp.BPM)
}
