package theory

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

var (
	majorSteps = []int{0, 2, 4, 5, 7, 9, 11}
	minorSteps = []int{0, 2, 3, 5, 7, 8, 10}

	sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	noteOffsets = map[string]int{
		"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
	}

	flatMajorTonics = map[int]bool{5: true, 10: true, 3: true, 8: true, 1: true, 6: true} // F Bb Eb Ab Db Gb
	flatMinorTonics = map[int]bool{2: true, 7: true, 0: true, 5: true, 10: true, 3: true} // D G C F Bb Eb
)

// PitchClass parses a note name such as "C", "F#" or "Bb" into 0..11
func PitchClass(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty note name")
	}
	letter := strings.ToUpper(name[:1])
	pc, ok := noteOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("invalid note letter: %s", name[:1])
	}
	for _, acc := range name[1:] {
		switch acc {
		case '#':
			pc++
		case 'b':
			pc--
		default:
			return 0, fmt.Errorf("invalid accidental in note name: %s", name)
		}
	}
	return (pc%12 + 12) % 12, nil
}

// PrefersFlats reports whether a key is conventionally spelled with flats
func PrefersFlats(key models.Key) bool {
	pc, err := PitchClass(key.Tonic)
	if err != nil {
		return false
	}
	switch {
	case strings.Contains(key.Tonic[1:], "b"):
		return true
	case strings.Contains(key.Tonic, "#"):
		return false
	}
	if key.Mode == models.Minor {
		return flatMinorTonics[pc]
	}
	return flatMajorTonics[pc]
}

// NoteName spells a pitch class for the given key
func NoteName(pc int, key models.Key) string {
	return SpellPitchClass(pc, PrefersFlats(key))
}

// SpellPitchClass names a pitch class with flats or sharps
func SpellPitchClass(pc int, flats bool) string {
	pc = (pc%12 + 12) % 12
	if flats {
		return flatNames[pc]
	}
	return sharpNames[pc]
}

// DegreePitchClass returns the pitch class of a scale degree (1..7) in key.
// Minor keys use the natural minor scale.
func DegreePitchClass(key models.Key, degree int) (int, error) {
	if degree < 1 || degree > 7 {
		return 0, fmt.Errorf("scale degree out of range: %d", degree)
	}
	tonic, err := PitchClass(key.Tonic)
	if err != nil {
		return 0, err
	}
	steps := majorSteps
	if key.Mode == models.Minor {
		steps = minorSteps
	}
	return (tonic + steps[degree-1]) % 12, nil
}
