package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

func TestProgressionToChordEvents(t *testing.T) {
	aMinor := models.Key{Tonic: "A", Mode: models.Minor}

	events, err := ProgressionToChordEvents([]string{"i", "iv7", "V7b9", "i"}, nil, aMinor, 2)
	require.NoError(t, err)

	want := []models.ChordEvent{
		{ChordSymbol: "Am", Roman: "i", StartBeats: 0, DurationBeats: 2},
		{ChordSymbol: "Dm7", Roman: "iv7", StartBeats: 2, DurationBeats: 2},
		{ChordSymbol: "E7b9", Roman: "V7b9", StartBeats: 4, DurationBeats: 2},
		{ChordSymbol: "Am", Roman: "i", StartBeats: 6, DurationBeats: 2},
	}
	assert.Equal(t, want, events)
}

func TestProgressionToChordEvents_DefaultLength(t *testing.T) {
	events, err := ProgressionToChordEvents([]string{"I", "V"}, nil, models.Key{Tonic: "C", Mode: models.Major}, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, DefaultBeatsPerChord, events[1].StartBeats)
}

func TestProgressionToChordEvents_Invalid(t *testing.T) {
	_, err := ProgressionToChordEvents([]string{"I", "Q"}, nil, models.Key{Tonic: "C", Mode: models.Major}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chord 1")
}

func TestProgressionToChordEvents_NinthFollowsFunction(t *testing.T) {
	cMajor := models.Key{Tonic: "C", Mode: models.Major}
	annotated := []string{"I9", "ii9", "V9", "I"}
	functions := []models.Function{models.Tonic, models.Predominant, models.Dominant, models.Tonic}

	events, err := ProgressionToChordEvents(annotated, functions, cMajor, 4)
	require.NoError(t, err)

	symbols := make([]string, len(events))
	for i, ev := range events {
		symbols[i] = ev.ChordSymbol
	}
	assert.Equal(t, []string{"Cadd9", "Dmadd9", "G9", "C"}, symbols)
	assert.Equal(t, "I9", events[0].Roman)

	tonicNotes, err := ChordToMIDI(events[0].ChordSymbol, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{60, 64, 67, 74}, tonicNotes)

	_, err = ProgressionToChordEvents(annotated, functions[:2], cMajor, 4)
	assert.Error(t, err)
}

func TestChordEventsToNoteEvents(t *testing.T) {
	chords := []models.ChordEvent{
		{ChordSymbol: "C", StartBeats: 0, DurationBeats: 4},
		{ChordSymbol: "G7", StartBeats: 4, DurationBeats: 4},
	}

	notes, err := ChordEventsToNoteEvents(chords, 4, 80)
	require.NoError(t, err)
	require.Len(t, notes, 7)

	for _, n := range notes[:3] {
		assert.Equal(t, 0.0, n.StartBeats)
		assert.Equal(t, 4.0, n.DurationBeats)
		assert.Equal(t, 80, n.Velocity)
	}
	assert.Equal(t, 67, notes[3].MidiNoteNumber)
	assert.Equal(t, 4.0, notes[3].StartBeats)

	_, err = ChordEventsToNoteEvents([]models.ChordEvent{{ChordSymbol: "Xyz"}}, 4, 80)
	assert.Error(t, err)
}
