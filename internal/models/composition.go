package models

// CompositionRequest wraps the user's generation parameters
type CompositionRequest struct {
	Prompt   string   `json:"prompt"`
	Seed     *int64   `json:"seed,omitempty"`     // Optional seed for reproducibility
	Sections []string `json:"sections,omitempty"` // Section names to use, in order (default: full plan)
}

// SectionResult is the outcome of one section of a composition
type SectionResult struct {
	Name      string      `json:"name"`
	Roman     []string    `json:"roman"`
	Functions []Function  `json:"functions"`
	Mode      Mode        `json:"mode"`
	Annotated []string    `json:"annotated"`
	Bias      EmotionBias `json:"bias"`
	Relaxed   bool        `json:"relaxed,omitempty"`  // Constraints dropped to find a candidate
	Fallback  bool        `json:"fallback,omitempty"` // Uniform draw over the whole corpus
}

// Composition is a complete generated piece, ready to render
type Composition struct {
	ID          string            `json:"id"`
	Prompt      string            `json:"prompt"`
	Seed        int64             `json:"seed"`
	Bias        EmotionBias       `json:"bias"`
	Diagnostics *MatchDiagnostics `json:"diagnostics,omitempty"`
	Sections    []SectionResult   `json:"sections"`
	Annotated   []string          `json:"annotated"`
	Chords      []ChordEvent      `json:"chords"`
	Key         Key               `json:"key"`
	BPM         int               `json:"bpm"`
}

// Symbols returns the concrete chord symbols in order
func (c *Composition) Symbols() []string {
	out := make([]string, len(c.Chords))
	for i, ch := range c.Chords {
		out[i] = ch.ChordSymbol
	}
	return out
}
