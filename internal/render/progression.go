package render

import (
	"fmt"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

const (
	DefaultBeatsPerChord = 4.0 // one 4/4 bar per chord
	DefaultOctave        = 4
	DefaultVelocity      = 90
)

// ProgressionToChordEvents resolves annotated roman numerals in key and lays
// them out back to back. functions, when given, runs parallel to annotated:
// a bare ninth on a tonic or predominant chord is voiced as an added ninth.
func ProgressionToChordEvents(annotated []string, functions []models.Function, key models.Key, beatsPerChord float64) ([]models.ChordEvent, error) {
	if functions != nil && len(functions) != len(annotated) {
		return nil, fmt.Errorf("got %d functions for %d chords", len(functions), len(annotated))
	}
	if beatsPerChord <= 0 {
		beatsPerChord = DefaultBeatsPerChord
	}
	events := make([]models.ChordEvent, 0, len(annotated))
	for i, numeral := range annotated {
		chord, err := ResolveRoman(numeral, key)
		if err != nil {
			return nil, fmt.Errorf("chord %d: %w", i, err)
		}
		if functions != nil && functions[i] != models.Dominant && chord.Extension == "9" {
			chord.Extension = "add9"
		}
		events = append(events, models.ChordEvent{
			ChordSymbol:   chord.Symbol(),
			Roman:         numeral,
			StartBeats:    float64(i) * beatsPerChord,
			DurationBeats: beatsPerChord,
		})
	}
	return events, nil
}

// ChordEventsToNoteEvents voices every chord as a block chord
func ChordEventsToNoteEvents(chords []models.ChordEvent, octave, velocity int) ([]models.NoteEvent, error) {
	var noteEvents []models.NoteEvent
	for i, ch := range chords {
		notes, err := ChordToMIDI(ch.ChordSymbol, octave)
		if err != nil {
			return nil, fmt.Errorf("invalid chord in progression at %d: %s: %w", i, ch.ChordSymbol, err)
		}
		// All notes of the chord start simultaneously
		for _, midiNote := range notes {
			noteEvents = append(noteEvents, models.NoteEvent{
				MidiNoteNumber: midiNote,
				Velocity:       velocity,
				StartBeats:     ch.StartBeats,
				DurationBeats:  ch.DurationBeats,
			})
		}
	}
	return noteEvents, nil
}
