package harmony

import (
	"math"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

// emotionEnergy is the energy rating (0..3) of each emotional profile
var emotionEnergy = map[models.Emotion]float64{
	models.SuspensefulTense:       2,
	models.CalmMeditative:         0,
	models.WistfulLonging:         1,
	models.MotivationalTriumphant: 3,
	models.NostalgicSentimental:   1,
	models.DarkBrooding:           1,
	models.HappyUplifting:         2,
}

const maxEnergy = 3.0

// ChooseTempo maps the bias-weighted mean energy linearly onto [minBPM, maxBPM]
func ChooseTempo(bias models.EmotionBias, minBPM, maxBPM int) int {
	if maxBPM < minBPM {
		minBPM, maxBPM = maxBPM, minBPM
	}
	total, weighted := 0.0, 0.0
	for _, id := range models.AllEmotions {
		total += bias[id]
		weighted += bias[id] * emotionEnergy[id]
	}
	energy := maxEnergy / 2
	if total > 0 {
		energy = weighted / total
	}
	span := float64(maxBPM - minBPM)
	return minBPM + int(math.Round(span*energy/maxEnergy))
}
