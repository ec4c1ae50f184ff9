package harmony

import (
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/magda-harmony/internal/logger"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

// ErrEmptyCorpus is returned when a generator has nothing to sample from
var ErrEmptyCorpus = errors.New("progression corpus is empty")

// SectionOutcome is the chosen pattern of one section and its annotation
type SectionOutcome struct {
	Name      string
	Pattern   models.ProgressionPattern
	Annotated []string
	Bias      models.EmotionBias
	Relaxed   bool
	Fallback  bool
}

// Result is the output of one generation run
type Result struct {
	Sections  []SectionOutcome
	Annotated []string
	Functions []models.Function // harmonic function of each annotated chord
}

// Mode is the majority mode across sections, ties going to the first section
func (r *Result) Mode() models.Mode {
	if len(r.Sections) == 0 {
		return models.Major
	}
	counts := map[models.Mode]int{}
	for _, s := range r.Sections {
		counts[s.Pattern.Mode]++
	}
	first := r.Sections[0].Pattern.Mode
	best := first
	for mode, n := range counts {
		if n > counts[best] {
			best = mode
		}
	}
	return best
}

// Generator turns a bias and a section plan into an annotated chord sequence.
// It holds only read-only data and may be shared; randomness is supplied per call.
type Generator struct {
	patterns []models.ProgressionPattern
}

// NewGenerator returns a generator over patterns
func NewGenerator(patterns []models.ProgressionPattern) (*Generator, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptyCorpus
	}
	return &Generator{patterns: patterns}, nil
}

// AdjustBias applies a section's signed delta to the axes already present in
// bias, clamping to [0,1]. Axes only present in delta are not added.
func AdjustBias(bias models.EmotionBias, delta map[models.Emotion]float64) models.EmotionBias {
	adjusted := bias.Clone()
	for id, d := range delta {
		if v, ok := bias[id]; ok {
			adjusted[id] = models.Clamp(v+d, 0, 1)
		}
	}
	return adjusted
}

// Generate runs the sections in order. Each section excludes the previous
// section's roman sequence. A section with no candidate, even unconstrained,
// falls back to a uniform draw over the whole corpus, so a run never stops
// part way.
func (g *Generator) Generate(bias models.EmotionBias, sections []models.SectionConfig, rng Rand) (*Result, error) {
	result := &Result{
		Sections:  make([]SectionOutcome, 0, len(sections)),
		Annotated: []string{},
	}
	var exclude []string

	for i := range sections {
		section := &sections[i]
		adjusted := AdjustBias(bias, section.BiasDelta)

		outcome := SectionOutcome{Name: section.Name, Bias: adjusted}
		chosen, sel, err := Select(adjusted, g.patterns, section, exclude, rng)
		switch {
		case err == nil:
			outcome.Relaxed = sel.Relaxed
			if sel.Relaxed {
				logger.Debug("Section constraints relaxed", logger.Fields{
					"section":    section.Name,
					"candidates": sel.Candidates,
				})
			}
		case errors.Is(err, ErrNoCandidate):
			chosen, err = SelectUniform(g.patterns, rng)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", section.Name, err)
			}
			outcome.Relaxed = true
			outcome.Fallback = true
			logger.Warn("No weighted candidate, using uniform fallback", logger.Fields{
				"section": section.Name,
			})
		default:
			return nil, fmt.Errorf("section %s: %w", section.Name, err)
		}

		annotated := make([]string, len(chosen.RomanSequence))
		for j, symbol := range chosen.RomanSequence {
			annotated[j] = ChooseExtension(symbol, chosen.FunctionSequence[j], chosen.Mode, adjusted, rng)
		}

		outcome.Pattern = chosen
		outcome.Annotated = annotated
		result.Sections = append(result.Sections, outcome)
		result.Annotated = append(result.Annotated, annotated...)
		result.Functions = append(result.Functions, chosen.FunctionSequence...)
		exclude = chosen.RomanSequence
	}

	return result, nil
}

// GenerateSingle draws one unconstrained pattern. When no pattern has a
// positive effective weight the draw falls back to base weights, then to a
// uniform draw; the second return reports whether a fallback was used.
func (g *Generator) GenerateSingle(bias models.EmotionBias, rng Rand) (models.ProgressionPattern, bool, error) {
	chosen, _, err := Select(bias, g.patterns, nil, nil, rng)
	if err == nil {
		return chosen, false, nil
	}
	if !errors.Is(err, ErrNoCandidate) {
		return models.ProgressionPattern{}, false, err
	}

	logger.Warn("Effective weights are all zero, falling back to base weights", nil)
	weights := make([]float64, len(g.patterns))
	for i, p := range g.patterns {
		weights[i] = p.BaseWeight
	}
	if idx := weightedIndex(weights, rng); idx >= 0 {
		return g.patterns[idx], true, nil
	}
	chosen, err = SelectUniform(g.patterns, rng)
	return chosen, true, err
}
