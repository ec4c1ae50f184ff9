package models

import "strings"

// Function is a coarse harmonic function tag
type Function string

const (
	Tonic       Function = "T"
	Predominant Function = "PD"
	Dominant    Function = "D"
)

// Valid reports whether f is one of T, PD, D
func (f Function) Valid() bool {
	return f == Tonic || f == Predominant || f == Dominant
}

// Mode is the tonal mode of a pattern or key
type Mode string

const (
	Major Mode = "major"
	Minor Mode = "minor"
)

// Valid reports whether m is major or minor
func (m Mode) Valid() bool {
	return m == Major || m == Minor
}

// ProgressionPattern is one pre-analyzed chord progression from the corpus.
// RomanSequence and FunctionSequence are index-aligned and never empty once loaded.
type ProgressionPattern struct {
	RomanSequence    []string            `json:"roman_sequence"`
	FunctionSequence []Function          `json:"function_sequence"`
	Mode             Mode                `json:"mode"`
	Count            int                 `json:"count,omitempty"`
	BaseWeight       float64             `json:"base_weight"`
	EmotionScores    map[Emotion]float64 `json:"emotion_scores"`
}

// LastFunction returns the function of the final chord
func (p ProgressionPattern) LastFunction() Function {
	if len(p.FunctionSequence) == 0 {
		return ""
	}
	return p.FunctionSequence[len(p.FunctionSequence)-1]
}

// String returns the roman sequence separated by spaces
func (p ProgressionPattern) String() string {
	return strings.Join(p.RomanSequence, " ")
}

// SameRomans reports whether two roman sequences are identical
func SameRomans(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
