package models

// PhraseMatch records one lexicon phrase found in a prompt
type PhraseMatch struct {
	Phrase     string  `json:"phrase"`
	StartIndex int     `json:"start_index"`
	Multiplier float64 `json:"multiplier"`
}

// ModifierApplication records a modifier consumed by the phrase that followed it
type ModifierApplication struct {
	Modifier   string  `json:"modifier"`
	Phrase     string  `json:"phrase"`
	Multiplier float64 `json:"multiplier"`
}

// MatchDiagnostics explains how a prompt was turned into a bias
type MatchDiagnostics struct {
	NormalizedPrompt string                `json:"normalized_prompt"`
	Tokens           []string              `json:"tokens"`
	MatchedPhrases   []PhraseMatch         `json:"matched_phrases"`
	AppliedModifiers []ModifierApplication `json:"applied_modifiers"`
	IgnoredModifiers []string              `json:"ignored_modifiers"`
	FinalBias        EmotionBias           `json:"final_bias"`
}
