package render

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/theory"
)

// Chord is a roman numeral resolved against a concrete key
type Chord struct {
	Root      string
	Quality   theory.Quality
	Extension string
}

var qualitySuffix = map[theory.Quality]string{
	theory.QualityMajor:      "",
	theory.QualityMinor:      "m",
	theory.QualityDiminished: "dim",
	theory.QualityAugmented:  "aug",
}

// Symbol renders the chord as a lead-sheet symbol, e.g. "G7b9" or "Am7"
func (c Chord) Symbol() string {
	return c.Root + qualitySuffix[c.Quality] + c.Extension
}

// ResolveRoman resolves an annotated roman numeral such as "V7b9" in key
func ResolveRoman(numeral string, key models.Key) (Chord, error) {
	n, err := theory.ParseRoman(numeral)
	if err != nil {
		return Chord{}, err
	}
	pc, err := theory.DegreePitchClass(key, n.Degree)
	if err != nil {
		return Chord{}, fmt.Errorf("cannot resolve %s in %s: %w", numeral, key, err)
	}
	root := theory.NoteName(pc+n.Accidental, key)
	if n.Accidental != 0 {
		// a chromatic root follows its own accidental: bVII in C is Bb, not A#
		root = theory.SpellPitchClass(pc+n.Accidental, n.Accidental < 0)
	}
	return Chord{
		Root:      root,
		Quality:   n.Quality,
		Extension: n.Extension,
	}, nil
}

// ChordToMIDI converts a chord symbol to MIDI note numbers.
// Supports: C, Em, Am7, Cmaj7, G7b9, Bdim, C6, Em/G (inversions), etc.
// Octave follows the C4 = 60 convention.
func ChordToMIDI(chordSymbol string, octave int) ([]int, error) {
	// Parse bass note if present (e.g., "Em/G" -> chord="Em", bass="G")
	baseChord := chordSymbol
	bassNote := ""
	if parts := strings.Split(chordSymbol, "/"); len(parts) == 2 {
		baseChord = strings.TrimSpace(parts[0])
		bassNote = strings.TrimSpace(parts[1])
	}

	root, rest, err := splitRoot(baseChord)
	if err != nil {
		return nil, fmt.Errorf("invalid chord root: %w", err)
	}
	rootPC, err := theory.PitchClass(root)
	if err != nil {
		return nil, fmt.Errorf("invalid chord root: %w", err)
	}
	rootMIDI := (octave+1)*12 + rootPC

	quality, ext := parseChordQuality(rest)
	extensions, err := theory.ParseExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("invalid chord %s: %w", chordSymbol, err)
	}

	intervals := buildChordIntervals(quality, extensions)

	notes := make([]int, 0, len(intervals)+1)
	for _, interval := range intervals {
		midiNote := rootMIDI + interval
		if midiNote < 0 || midiNote > 127 {
			continue // Skip out-of-range notes
		}
		notes = append(notes, midiNote)
	}

	// Bass note sits one octave below the chord
	if bassNote != "" {
		if bassPC, err := theory.PitchClass(bassNote); err == nil {
			bassMIDI := octave*12 + bassPC
			if bassMIDI >= 0 && bassMIDI <= 127 {
				notes = append([]int{bassMIDI}, notes...)
			}
		}
	}

	if len(notes) == 0 {
		return nil, fmt.Errorf("no valid MIDI notes generated for chord: %s", chordSymbol)
	}
	return notes, nil
}

func splitRoot(chordSymbol string) (string, string, error) {
	if chordSymbol == "" {
		return "", "", fmt.Errorf("empty chord symbol")
	}
	if len(chordSymbol) > 1 && (chordSymbol[1] == '#' || chordSymbol[1] == 'b') {
		return chordSymbol[:2], chordSymbol[2:], nil
	}
	return chordSymbol[:1], chordSymbol[1:], nil
}

// parseChordQuality strips the quality marker and returns the remaining extension
func parseChordQuality(rest string) (theory.Quality, string) {
	switch {
	case strings.HasPrefix(rest, "maj"):
		return theory.QualityMajor, rest
	case strings.HasPrefix(rest, "dim"):
		return theory.QualityDiminished, strings.TrimPrefix(rest, "dim")
	case strings.HasPrefix(rest, "aug"):
		return theory.QualityAugmented, strings.TrimPrefix(rest, "aug")
	case strings.HasPrefix(rest, "min"):
		return theory.QualityMinor, strings.TrimPrefix(rest, "min")
	case strings.HasPrefix(rest, "m"):
		return theory.QualityMinor, strings.TrimPrefix(rest, "m")
	}
	return theory.QualityMajor, rest
}

func buildChordIntervals(quality theory.Quality, extensions []string) []int {
	var intervals []int

	switch quality {
	case theory.QualityMinor:
		intervals = []int{0, 3, 7} // Root, Minor 3rd, Perfect 5th
	case theory.QualityDiminished:
		intervals = []int{0, 3, 6} // Root, Minor 3rd, Diminished 5th
	case theory.QualityAugmented:
		intervals = []int{0, 4, 8} // Root, Major 3rd, Augmented 5th
	default:
		intervals = []int{0, 4, 7} // Root, Major 3rd, Perfect 5th
	}

	hasSeventh := false
	for _, ext := range extensions {
		if ext == "7" || ext == "maj7" {
			hasSeventh = true
		}
	}

	for _, ext := range extensions {
		switch ext {
		case "9", "11", "13":
			// a bare upper extension implies the dominant seventh
			if !hasSeventh {
				intervals = append(intervals, 10)
				hasSeventh = true
			}
		}
		switch ext {
		case "7":
			intervals = append(intervals, 10) // Minor 7th
		case "maj7":
			intervals = append(intervals, 11) // Major 7th
		case "6":
			intervals = append(intervals, 9) // Major 6th
		case "9", "add9":
			intervals = append(intervals, 14) // Major 9th
		case "b9":
			intervals = append(intervals, 13)
		case "#9":
			intervals = append(intervals, 15)
		case "11", "add11":
			intervals = append(intervals, 17) // Perfect 11th
		case "#11":
			intervals = append(intervals, 18)
		case "b13":
			intervals = append(intervals, 20)
		case "13", "add13":
			intervals = append(intervals, 21) // Major 13th
		}
	}

	return intervals
}
