package theory

import (
	"fmt"
	"strings"
)

// Quality is the triad quality implied by a roman numeral
type Quality string

const (
	QualityMajor      Quality = "major"
	QualityMinor      Quality = "minor"
	QualityDiminished Quality = "diminished"
	QualityAugmented  Quality = "augmented"
)

// Numeral is a parsed roman numeral chord symbol such as "V7b9" or "vii°"
type Numeral struct {
	Text       string
	Degree     int // 1..7
	Accidental int // -1 flat, +1 sharp, applied to the degree's pitch
	Lowercase  bool
	Quality    Quality
	Extension  string
}

var romanDegrees = []struct {
	text   string
	degree int
}{
	// longest first so "VII" is not read as "V" + "II"
	{"VII", 7}, {"III", 3}, {"VI", 6}, {"IV", 4}, {"II", 2}, {"V", 5}, {"I", 1},
}

// ParseRoman parses a roman numeral with an optional accidental prefix,
// diminished/augmented marker and extension suffix.
func ParseRoman(symbol string) (Numeral, error) {
	n := Numeral{Text: symbol}
	rest := symbol

	switch {
	case strings.HasPrefix(rest, "b"):
		n.Accidental = -1
		rest = rest[1:]
	case strings.HasPrefix(rest, "#"):
		n.Accidental = 1
		rest = rest[1:]
	}

	matched := false
	for _, rd := range romanDegrees {
		if len(rest) < len(rd.text) {
			continue
		}
		head := rest[:len(rd.text)]
		switch head {
		case rd.text:
			n.Lowercase = false
		case strings.ToLower(rd.text):
			n.Lowercase = true
		default:
			continue
		}
		n.Degree = rd.degree
		rest = rest[len(rd.text):]
		matched = true
		break
	}
	if !matched {
		return Numeral{}, fmt.Errorf("invalid roman numeral: %q", symbol)
	}

	n.Quality = QualityMajor
	if n.Lowercase {
		n.Quality = QualityMinor
	}
	switch {
	case strings.HasPrefix(rest, "°"):
		n.Quality = QualityDiminished
		rest = strings.TrimPrefix(rest, "°")
	case strings.HasPrefix(rest, "o") && n.Lowercase:
		n.Quality = QualityDiminished
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		n.Quality = QualityAugmented
		rest = rest[1:]
	}

	if _, err := ParseExtension(rest); err != nil {
		return Numeral{}, fmt.Errorf("invalid roman numeral %q: %w", symbol, err)
	}
	n.Extension = rest
	return n, nil
}

// Base returns the numeral without its extension, e.g. "V" for "V7b9"
func (n Numeral) Base() string {
	return strings.TrimSuffix(n.Text, n.Extension)
}

var extensionTokens = []string{
	// longest first
	"maj7", "add13", "add11", "add9", "b13", "#11", "b9", "#9", "13", "11", "9", "7", "6",
}

// ParseExtension splits an extension suffix such as "7#9b13" into its parts
func ParseExtension(ext string) ([]string, error) {
	parts := []string{}
	rest := ext
	for rest != "" {
		found := false
		for _, tok := range extensionTokens {
			if strings.HasPrefix(rest, tok) {
				parts = append(parts, tok)
				rest = rest[len(tok):]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown chord extension %q", rest)
		}
	}
	return parts, nil
}
