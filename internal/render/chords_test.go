package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/theory"
)

func TestChordToMIDI(t *testing.T) {
	tests := []struct {
		name          string
		chordSymbol   string
		octave        int
		expectedNotes []int
		expectError   bool
	}{
		{name: "C major", chordSymbol: "C", octave: 4, expectedNotes: []int{60, 64, 67}},
		{name: "E minor", chordSymbol: "Em", octave: 4, expectedNotes: []int{64, 67, 71}},
		{name: "A minor 7th", chordSymbol: "Am7", octave: 3, expectedNotes: []int{57, 60, 64, 67}},
		{name: "C major 7th", chordSymbol: "Cmaj7", octave: 4, expectedNotes: []int{60, 64, 67, 71}},
		{name: "B flat", chordSymbol: "Bb", octave: 3, expectedNotes: []int{58, 62, 65}},
		{name: "F sharp minor", chordSymbol: "F#m", octave: 4, expectedNotes: []int{66, 69, 73}},
		{name: "B diminished", chordSymbol: "Bdim", octave: 3, expectedNotes: []int{59, 62, 65}},
		{name: "C augmented", chordSymbol: "Caug", octave: 4, expectedNotes: []int{60, 64, 68}},
		{name: "dominant seventh", chordSymbol: "G7", octave: 3, expectedNotes: []int{55, 59, 62, 65}},
		{name: "dominant flat nine", chordSymbol: "E7b9", octave: 3, expectedNotes: []int{52, 56, 59, 62, 65}},
		{name: "dominant sharp nine flat thirteen", chordSymbol: "E7#9b13", octave: 3, expectedNotes: []int{52, 56, 59, 62, 67, 72}},
		{name: "dominant ninth implies seventh", chordSymbol: "G9", octave: 3, expectedNotes: []int{55, 59, 62, 65, 69}},
		{name: "added ninth", chordSymbol: "Cadd9", octave: 4, expectedNotes: []int{60, 64, 67, 74}},
		{name: "major sixth", chordSymbol: "F6", octave: 4, expectedNotes: []int{65, 69, 72, 74}},
		{name: "minor added ninth", chordSymbol: "Amadd9", octave: 3, expectedNotes: []int{57, 60, 64, 71}},
		{name: "slash chord", chordSymbol: "Em/G", octave: 4, expectedNotes: []int{55, 64, 67, 71}},
		{name: "octave 3", chordSymbol: "C", octave: 3, expectedNotes: []int{48, 52, 55}},
		{name: "empty", chordSymbol: "", octave: 4, expectError: true},
		{name: "bad root", chordSymbol: "H7", octave: 4, expectError: true},
		{name: "bad extension", chordSymbol: "Csus4", octave: 4, expectError: true},
		{name: "out of range", chordSymbol: "C", octave: 11, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := ChordToMIDI(tt.chordSymbol, tt.octave)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedNotes, notes)
		})
	}
}

func TestResolveRoman(t *testing.T) {
	cMajor := models.Key{Tonic: "C", Mode: models.Major}
	fMajor := models.Key{Tonic: "F", Mode: models.Major}
	aMinor := models.Key{Tonic: "A", Mode: models.Minor}

	tests := []struct {
		numeral string
		key     models.Key
		want    string
	}{
		{"I", cMajor, "C"},
		{"vi7", cMajor, "Am7"},
		{"V7b9", aMinor, "E7b9"},
		{"i", aMinor, "Am"},
		{"III", aMinor, "C"},
		{"VII", aMinor, "G"},
		{"iv7", aMinor, "Dm7"},
		{"ii°", aMinor, "Bdim"},
		{"vii°", cMajor, "Bdim"},
		{"IVmaj7", fMajor, "Bbmaj7"},
		{"Iadd9", fMajor, "Fadd9"},
		{"bVII", cMajor, "Bb"},
		{"#iv", cMajor, "F#m"},
		{"III+", cMajor, "Eaug"},
	}

	for _, tt := range tests {
		t.Run(tt.numeral+" in "+tt.key.String(), func(t *testing.T) {
			chord, err := ResolveRoman(tt.numeral, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chord.Symbol())
		})
	}
}

func TestResolveRoman_Invalid(t *testing.T) {
	_, err := ResolveRoman("X", models.Key{Tonic: "C", Mode: models.Major})
	assert.Error(t, err)

	_, err = ResolveRoman("I", models.Key{Tonic: "H", Mode: models.Major})
	assert.Error(t, err)
}

func TestResolveRoman_SymbolsAreVoiceable(t *testing.T) {
	keys := []models.Key{
		{Tonic: "C", Mode: models.Major}, {Tonic: "Eb", Mode: models.Major}, {Tonic: "F#", Mode: models.Major},
		{Tonic: "A", Mode: models.Minor}, {Tonic: "Bb", Mode: models.Minor}, {Tonic: "C#", Mode: models.Minor},
	}
	numerals := []string{"I", "ii7", "iii", "IVmaj7", "V7#9b13", "vi6", "vii°7", "bVII", "III", "VIadd9", "V9"}

	for _, key := range keys {
		for _, numeral := range numerals {
			chord, err := ResolveRoman(numeral, key)
			require.NoError(t, err)
			notes, err := ChordToMIDI(chord.Symbol(), DefaultOctave)
			require.NoError(t, err, "%s in %s -> %s", numeral, key, chord.Symbol())

			rootPC, err := theory.PitchClass(chord.Root)
			require.NoError(t, err)
			assert.Equal(t, rootPC, notes[0]%12, "%s in %s", numeral, key)
		}
	}
}
