package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/theory"
)

// ValidationError reports a corpus record that cannot be used for generation
type ValidationError struct {
	Index  int
	Record string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid progression record %d [%s]: %s", e.Index, e.Record, e.Reason)
}

// patternRecord mirrors the on-disk shape; pointer fields detect absent values
type patternRecord struct {
	RomanSequence    []string           `json:"roman_sequence"`
	FunctionSequence []string           `json:"function_sequence"`
	Mode             string             `json:"mode"`
	Count            int                `json:"count"`
	BaseWeight       *float64           `json:"base_weight"`
	Weight           *float64           `json:"weight"` // older corpus files
	EmotionScores    map[string]float64 `json:"emotion_scores"`
}

// LoadPatterns decodes and validates a JSON array of progression records.
// Records without emotion scores are scored with ScoreEmotions; records
// without a base weight are weighted by their count relative to the most
// frequent pattern.
func LoadPatterns(r io.Reader) ([]models.ProgressionPattern, error) {
	var records []patternRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode progression corpus: %w", err)
	}

	patterns := make([]models.ProgressionPattern, 0, len(records))
	var unweighted []int
	for i, rec := range records {
		p, hasWeight, err := rec.toPattern(i)
		if err != nil {
			return nil, err
		}
		if !hasWeight {
			unweighted = append(unweighted, len(patterns))
		}
		patterns = append(patterns, p)
	}

	if len(unweighted) > 0 {
		weights := CountWeights(patterns)
		for _, idx := range unweighted {
			patterns[idx].BaseWeight = weights[idx]
		}
	}
	return patterns, nil
}

func (rec patternRecord) toPattern(index int) (models.ProgressionPattern, bool, error) {
	label := strings.Join(rec.RomanSequence, " ")
	invalid := func(format string, args ...any) error {
		return &ValidationError{Index: index, Record: label, Reason: fmt.Sprintf(format, args...)}
	}

	if len(rec.RomanSequence) == 0 {
		return models.ProgressionPattern{}, false, invalid("empty roman_sequence")
	}
	if len(rec.RomanSequence) != len(rec.FunctionSequence) {
		return models.ProgressionPattern{}, false, invalid("roman_sequence has %d chords but function_sequence has %d",
			len(rec.RomanSequence), len(rec.FunctionSequence))
	}
	for _, symbol := range rec.RomanSequence {
		n, err := theory.ParseRoman(symbol)
		if err != nil {
			return models.ProgressionPattern{}, false, invalid("%v", err)
		}
		if n.Extension != "" {
			return models.ProgressionPattern{}, false, invalid("chord %q already carries extension %q", symbol, n.Extension)
		}
	}

	functions := make([]models.Function, len(rec.FunctionSequence))
	for i, f := range rec.FunctionSequence {
		fn := models.Function(f)
		if !fn.Valid() {
			return models.ProgressionPattern{}, false, invalid("unknown harmonic function %q at position %d", f, i)
		}
		functions[i] = fn
	}

	mode := models.Mode(rec.Mode)
	if !mode.Valid() {
		return models.ProgressionPattern{}, false, invalid("unknown mode %q", rec.Mode)
	}

	if rec.Count < 0 {
		return models.ProgressionPattern{}, false, invalid("negative count %d", rec.Count)
	}

	weight := rec.BaseWeight
	if weight == nil {
		weight = rec.Weight
	}
	hasWeight := weight != nil
	baseWeight := 0.0
	if hasWeight {
		baseWeight = *weight
		if baseWeight < 0 || math.IsNaN(baseWeight) || math.IsInf(baseWeight, 0) {
			return models.ProgressionPattern{}, false, invalid("base_weight must be a finite non-negative number, got %v", baseWeight)
		}
	}

	romans := append([]string(nil), rec.RomanSequence...)
	var scores map[models.Emotion]float64
	if rec.EmotionScores == nil {
		scores = ScoreEmotions(romans, functions, mode)
	} else {
		scores = make(map[models.Emotion]float64, len(models.AllEmotions))
		for k, v := range rec.EmotionScores {
			id := models.Emotion(k)
			if !models.IsKnownEmotion(id) {
				continue
			}
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return models.ProgressionPattern{}, false, invalid("emotion score %s must be a finite non-negative number, got %v", k, v)
			}
			scores[id] = v
		}
	}

	return models.ProgressionPattern{
		RomanSequence:    romans,
		FunctionSequence: functions,
		Mode:             mode,
		Count:            rec.Count,
		BaseWeight:       baseWeight,
		EmotionScores:    scores,
	}, hasWeight, nil
}
