package emotion

import (
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/logger"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

type pendingModifier struct {
	label      string
	multiplier float64
}

// Match scans the prompt for modifiers and lexicon phrases and returns a
// normalized emotion bias. It never fails: a prompt with no matches yields the
// neutral bias.
func (l *Lexicon) Match(prompt string) (models.EmotionBias, models.MatchDiagnostics) {
	normalized := Normalize(prompt)
	tokens := Tokenize(normalized)

	diag := models.MatchDiagnostics{
		NormalizedPrompt: normalized,
		Tokens:           tokens,
		MatchedPhrases:   []models.PhraseMatch{},
		AppliedModifiers: []models.ModifierApplication{},
		IgnoredModifiers: []string{},
	}

	acc := models.ZeroBias()
	var pending *pendingModifier

	index := 0
	for index < len(tokens) {
		if mod, ok := l.modifierAt(tokens, index); ok {
			if pending == nil {
				pending = &pendingModifier{label: mod.label, multiplier: mod.multiplier}
			} else {
				logger.Debug("Modifier ignored, one is already pending", logger.Fields{
					"modifier": mod.label,
					"pending":  pending.label,
					"index":    index,
				})
				diag.IgnoredModifiers = append(diag.IgnoredModifiers, mod.label)
			}
			index += len(mod.tokens)
			continue
		}

		if phrase, ok := l.phraseAt(tokens, index); ok {
			multiplier := 1.0
			if pending != nil {
				multiplier = pending.multiplier
				diag.AppliedModifiers = append(diag.AppliedModifiers, models.ModifierApplication{
					Modifier:   pending.label,
					Phrase:     phrase.text,
					Multiplier: multiplier,
				})
				pending = nil
			}
			for id, value := range phrase.contributions {
				acc[id] += max(0, value*multiplier)
			}
			diag.MatchedPhrases = append(diag.MatchedPhrases, models.PhraseMatch{
				Phrase:     phrase.text,
				StartIndex: index,
				Multiplier: multiplier,
			})
			index += len(phrase.tokens)
			continue
		}

		index++
	}

	bias := normalizeAccumulator(acc)
	diag.FinalBias = bias.Clone()
	return bias, diag
}

func (l *Lexicon) modifierAt(tokens []string, index int) (modifierEntry, bool) {
	for _, n := range l.modifierLengths {
		if index+n > len(tokens) {
			continue
		}
		if mod, ok := l.modifiers[strings.Join(tokens[index:index+n], " ")]; ok {
			return mod, true
		}
	}
	return modifierEntry{}, false
}

func (l *Lexicon) phraseAt(tokens []string, index int) (phraseEntry, bool) {
	for _, candidate := range l.byFirstToken[tokens[index]] {
		if windowEquals(tokens, index, candidate.tokens) {
			return candidate, true
		}
	}
	return phraseEntry{}, false
}

func windowEquals(tokens []string, index int, want []string) bool {
	if index+len(want) > len(tokens) {
		return false
	}
	for i, tok := range want {
		if tokens[index+i] != tok {
			return false
		}
	}
	return true
}

// normalizeAccumulator divides by the largest axis, or returns the neutral
// bias when nothing accumulated.
func normalizeAccumulator(acc models.EmotionBias) models.EmotionBias {
	maxValue := 0.0
	for _, id := range models.AllEmotions {
		maxValue = max(maxValue, acc[id])
	}
	if maxValue <= 0 {
		return models.NeutralBias()
	}
	out := make(models.EmotionBias, len(models.AllEmotions))
	for _, id := range models.AllEmotions {
		out[id] = models.Clamp(acc[id]/maxValue, 0, 1)
	}
	return out
}
