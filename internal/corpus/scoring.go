package corpus

import (
	"math"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/theory"
)

func cadenceStrength(functions []models.Function) float64 {
	n := len(functions)
	if n < 2 {
		return 0
	}
	if functions[n-2] == models.Dominant && functions[n-1] == models.Tonic {
		return 1.0
	}
	if functions[n-1] == models.Tonic {
		return 0.5
	}
	return 0
}

func boolScore(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}

// ScoreEmotions derives emotion scores for a progression from its harmonic
// functions, mode and diminished color. The scores sum to 1, rounded to four
// decimals; a progression with no positive score gets an even split.
func ScoreEmotions(romans []string, functions []models.Function, mode models.Mode) map[models.Emotion]float64 {
	var tonics, predominants, dominants float64
	for _, f := range functions {
		switch f {
		case models.Tonic:
			tonics++
		case models.Predominant:
			predominants++
		case models.Dominant:
			dominants++
		}
	}

	last := models.Function("")
	if len(functions) > 0 {
		last = functions[len(functions)-1]
	}
	endingTonic := last == models.Tonic
	endingDominant := last == models.Dominant
	diminished := false
	for _, r := range romans {
		if n, err := theory.ParseRoman(r); err == nil && n.Quality == theory.QualityDiminished {
			diminished = true
		}
	}
	cadence := cadenceStrength(functions)
	major := mode == models.Major
	minor := mode == models.Minor

	raw := map[models.Emotion]float64{
		models.SuspensefulTense: 0.5*dominants + boolScore(endingDominant, 1.0, 0) +
			boolScore(diminished, 0.5, 0) - 0.2*tonics,
		models.CalmMeditative: 0.6*tonics + 0.3*predominants + boolScore(endingTonic, 0.5, 0) -
			0.4*dominants - boolScore(diminished, 0.3, 0),
		models.WistfulLonging: boolScore(minor, 1.0, 0.2) + 0.2*predominants +
			boolScore(endingTonic, 0.2, 0) - 0.2*dominants,
		models.MotivationalTriumphant: boolScore(major, 1.0, 0) + 0.4*dominants + 0.6*cadence -
			0.2*predominants,
		models.NostalgicSentimental: 0.3*tonics + 0.2*predominants + boolScore(endingTonic, 0.3, 0) +
			boolScore(minor, 0.3, 0.1) - 0.3*dominants,
		models.DarkBrooding: boolScore(minor, 1.0, 0) + boolScore(diminished, 0.6, 0) +
			0.2*dominants - 0.2*tonics,
		models.HappyUplifting: boolScore(major, 1.0, 0) + 0.4*tonics + 0.3*cadence -
			0.3*dominants - boolScore(diminished, 0.2, 0),
	}

	total := 0.0
	for _, id := range models.AllEmotions {
		raw[id] = max(raw[id], 0)
		total += raw[id]
	}

	scores := make(map[models.Emotion]float64, len(models.AllEmotions))
	if total == 0 {
		equal := 1.0 / float64(len(models.AllEmotions))
		for _, id := range models.AllEmotions {
			scores[id] = equal
		}
		return scores
	}
	for _, id := range models.AllEmotions {
		scores[id] = round(raw[id]/total, 4)
	}
	return scores
}

// CountWeights returns count / max(count) for every pattern, rounded to two
// decimals, where counts are summed across patterns sharing a roman sequence.
// Patterns with no count get weight 1 when no pattern carries a count.
func CountWeights(patterns []models.ProgressionPattern) []float64 {
	totals := make(map[string]int)
	for _, p := range patterns {
		totals[strings.Join(p.RomanSequence, " ")] += p.Count
	}
	maxCount := 0
	for _, c := range totals {
		maxCount = max(maxCount, c)
	}

	weights := make([]float64, len(patterns))
	for i, p := range patterns {
		if maxCount == 0 {
			weights[i] = 1.0
			continue
		}
		weights[i] = round(float64(totals[strings.Join(p.RomanSequence, " ")])/float64(maxCount), 2)
	}
	return weights
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
