package models

// Emotion identifies one axis of the emotion bias vector
type Emotion string

// Emotion identifiers. The set is closed; unknown keys in input data are ignored.
const (
	SuspensefulTense       Emotion = "suspenseful_tense"
	CalmMeditative         Emotion = "calm_meditative"
	WistfulLonging         Emotion = "wistful_longing"
	MotivationalTriumphant Emotion = "motivational_triumphant"
	NostalgicSentimental   Emotion = "nostalgic_sentimental"
	DarkBrooding           Emotion = "dark_brooding"
	HappyUplifting         Emotion = "happy_uplifting"
)

// NeutralBiasValue is assigned to every axis when a prompt matches nothing
const NeutralBiasValue = 0.3

// AllEmotions lists the emotion identifiers in their canonical order
var AllEmotions = []Emotion{
	SuspensefulTense,
	CalmMeditative,
	WistfulLonging,
	MotivationalTriumphant,
	NostalgicSentimental,
	DarkBrooding,
	HappyUplifting,
}

var knownEmotions = func() map[Emotion]bool {
	known := make(map[Emotion]bool, len(AllEmotions))
	for _, e := range AllEmotions {
		known[e] = true
	}
	return known
}()

// IsKnownEmotion reports whether id belongs to the fixed emotion set
func IsKnownEmotion(id Emotion) bool {
	return knownEmotions[id]
}

// EmotionBias weights each emotion axis, values in [0,1]
type EmotionBias map[Emotion]float64

// NeutralBias returns a bias with every axis at NeutralBiasValue
func NeutralBias() EmotionBias {
	bias := make(EmotionBias, len(AllEmotions))
	for _, e := range AllEmotions {
		bias[e] = NeutralBiasValue
	}
	return bias
}

// ZeroBias returns a bias with every axis present and set to zero
func ZeroBias() EmotionBias {
	bias := make(EmotionBias, len(AllEmotions))
	for _, e := range AllEmotions {
		bias[e] = 0
	}
	return bias
}

// Get returns the value for id, or 0 when absent
func (b EmotionBias) Get(id Emotion) float64 {
	return b[id]
}

// Clone returns an independent copy
func (b EmotionBias) Clone() EmotionBias {
	out := make(EmotionBias, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Dominant returns the axis with the highest value, ties going to canonical order
func (b EmotionBias) Dominant() Emotion {
	best := AllEmotions[0]
	bestValue := b[best]
	for _, e := range AllEmotions[1:] {
		if b[e] > bestValue {
			best = e
			bestValue = b[e]
		}
	}
	return best
}

// Clamp limits value to [low, high]
func Clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
