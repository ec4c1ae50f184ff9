package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoman(t *testing.T) {
	tests := []struct {
		symbol     string
		degree     int
		accidental int
		lowercase  bool
		quality    Quality
		extension  string
	}{
		{"I", 1, 0, false, QualityMajor, ""},
		{"vi", 6, 0, true, QualityMinor, ""},
		{"VII", 7, 0, false, QualityMajor, ""},
		{"iv7", 4, 0, true, QualityMinor, "7"},
		{"V7b9", 5, 0, false, QualityMajor, "7b9"},
		{"V7#9b13", 5, 0, false, QualityMajor, "7#9b13"},
		{"vii°", 7, 0, true, QualityDiminished, ""},
		{"viio7", 7, 0, true, QualityDiminished, "7"},
		{"ii°7", 2, 0, true, QualityDiminished, "7"},
		{"III+", 3, 0, false, QualityAugmented, ""},
		{"bVII", 7, -1, false, QualityMajor, ""},
		{"bVImaj7", 6, -1, false, QualityMajor, "maj7"},
		{"#iv", 4, 1, true, QualityMinor, ""},
		{"Iadd9", 1, 0, false, QualityMajor, "add9"},
		{"I6", 1, 0, false, QualityMajor, "6"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			n, err := ParseRoman(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.degree, n.Degree)
			assert.Equal(t, tt.accidental, n.Accidental)
			assert.Equal(t, tt.lowercase, n.Lowercase)
			assert.Equal(t, tt.quality, n.Quality)
			assert.Equal(t, tt.extension, n.Extension)
		})
	}
}

func TestParseRoman_Invalid(t *testing.T) {
	for _, symbol := range []string{"", "X", "b", "Vx", "V7q", "H"} {
		_, err := ParseRoman(symbol)
		assert.Error(t, err, symbol)
	}
}

func TestNumeral_Base(t *testing.T) {
	n, err := ParseRoman("V7b9")
	require.NoError(t, err)
	assert.Equal(t, "V", n.Base())

	n, err = ParseRoman("vii°")
	require.NoError(t, err)
	assert.Equal(t, "vii°", n.Base())
}

func TestParseExtension(t *testing.T) {
	parts, err := ParseExtension("7#9b13")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "#9", "b13"}, parts)

	parts, err = ParseExtension("")
	require.NoError(t, err)
	assert.Empty(t, parts)

	_, err = ParseExtension("sus4")
	assert.Error(t, err)
}
