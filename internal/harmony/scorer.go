package harmony

import (
	"errors"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

// ErrNoCandidate is returned when no pattern survives scoring, even with the
// section constraints relaxed.
var ErrNoCandidate = errors.New("no candidate progression")

// PatternStats are the structural measures the section constraints look at
type PatternStats struct {
	MotionPenalty float64
	DominantCount int
	Length        int
	LastFunction  models.Function
}

// Stats computes the structural measures of a pattern
func Stats(p models.ProgressionPattern) PatternStats {
	dominants := 0
	for _, f := range p.FunctionSequence {
		if f == models.Dominant {
			dominants++
		}
	}
	return PatternStats{
		MotionPenalty: MotionPenalty(p.RomanSequence),
		DominantCount: dominants,
		Length:        len(p.FunctionSequence),
		LastFunction:  p.LastFunction(),
	}
}

// MotionPenalty is the fraction of distinct symbols in the sequence, in (0,1]
// for any non-empty sequence and 1.0 exactly when nothing repeats.
func MotionPenalty(romans []string) float64 {
	if len(romans) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(romans))
	for _, r := range romans {
		distinct[r] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(romans))
}

// EmotionScore is the dot product of the bias and the pattern's emotion
// scores over the fixed emotion set.
func EmotionScore(bias models.EmotionBias, p models.ProgressionPattern) float64 {
	score := 0.0
	for _, id := range models.AllEmotions {
		score += bias[id] * p.EmotionScores[id]
	}
	return score
}

// EffectiveWeight combines emotional fit, corpus popularity and motion
func EffectiveWeight(bias models.EmotionBias, p models.ProgressionPattern) float64 {
	return EmotionScore(bias, p) * p.BaseWeight * MotionPenalty(p.RomanSequence)
}

// Allows reports whether a pattern with the given stats satisfies the
// section's constraints. A nil section allows everything.
func Allows(section *models.SectionConfig, stats PatternStats) bool {
	if section == nil {
		return true
	}

	motionMin, motionMax := 0.0, 1.0
	if section.MotionMin != nil {
		motionMin = *section.MotionMin
	}
	if section.MotionMax != nil {
		motionMax = *section.MotionMax
	}
	if stats.MotionPenalty < motionMin || stats.MotionPenalty > motionMax {
		return false
	}

	dominantMin, dominantMax := 0, stats.Length
	if section.DominantMin != nil {
		dominantMin = *section.DominantMin
	}
	if section.DominantMax != nil {
		dominantMax = *section.DominantMax
	}
	if stats.DominantCount < dominantMin || stats.DominantCount > dominantMax {
		return false
	}

	if section.EndingDominant != nil && *section.EndingDominant != (stats.LastFunction == models.Dominant) {
		return false
	}
	// only a truthy ending_tonic constrains; false means "don't care"
	if section.EndingTonic != nil && *section.EndingTonic && stats.LastFunction != models.Tonic {
		return false
	}
	return true
}

// SelectOutcome records how a pattern was chosen
type SelectOutcome struct {
	Candidates int  // number of patterns in the pass that produced the draw
	Relaxed    bool // section constraints were dropped to find a candidate
}

type candidate struct {
	index  int
	weight float64
}

func candidates(bias models.EmotionBias, patterns []models.ProgressionPattern, section *models.SectionConfig, exclude []string) ([]candidate, float64) {
	var out []candidate
	total := 0.0
	for i, p := range patterns {
		w := EffectiveWeight(bias, p)
		if !(w > 0) {
			continue
		}
		if !Allows(section, Stats(p)) {
			continue
		}
		if len(exclude) > 0 && models.SameRomans(p.RomanSequence, exclude) {
			continue
		}
		out = append(out, candidate{index: i, weight: w})
		total += w
	}
	return out, total
}

// Select draws one pattern with probability proportional to its effective
// weight among the patterns that satisfy the section and differ from
// exclude. If none qualify the draw is retried without section constraints,
// still honoring exclude. ErrNoCandidate means both passes came up empty.
func Select(bias models.EmotionBias, patterns []models.ProgressionPattern, section *models.SectionConfig, exclude []string, rng Rand) (models.ProgressionPattern, SelectOutcome, error) {
	pool, total := candidates(bias, patterns, section, exclude)
	outcome := SelectOutcome{}
	if len(pool) == 0 || total <= 0 {
		if section == nil {
			return models.ProgressionPattern{}, outcome, ErrNoCandidate
		}
		pool, total = candidates(bias, patterns, nil, exclude)
		outcome.Relaxed = true
		if len(pool) == 0 || total <= 0 {
			return models.ProgressionPattern{}, outcome, ErrNoCandidate
		}
	}
	outcome.Candidates = len(pool)

	weights := make([]float64, len(pool))
	for i, c := range pool {
		weights[i] = c.weight
	}
	idx := weightedIndex(weights, rng)
	if idx < 0 {
		return models.ProgressionPattern{}, outcome, ErrNoCandidate
	}
	return patterns[pool[idx].index], outcome, nil
}

// SelectUniform picks any pattern with equal probability, ignoring bias,
// constraints and exclusion.
func SelectUniform(patterns []models.ProgressionPattern, rng Rand) (models.ProgressionPattern, error) {
	if len(patterns) == 0 {
		return models.ProgressionPattern{}, ErrEmptyCorpus
	}
	return patterns[rng.Intn(len(patterns))], nil
}
