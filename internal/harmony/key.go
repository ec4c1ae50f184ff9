package harmony

import (
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

// DefaultKey is used when no key profile matches the requested mode
func DefaultKey(mode models.Mode) models.Key {
	if mode == models.Minor {
		return models.Key{Tonic: "A", Mode: models.Minor}
	}
	return models.Key{Tonic: "C", Mode: models.Major}
}

// ChooseKey draws a key of the given mode weighted by profile weight
func ChooseKey(profiles []models.KeyProfile, mode models.Mode, rng Rand) models.Key {
	var matching []models.KeyProfile
	var weights []float64
	for _, p := range profiles {
		if p.Mode == mode {
			matching = append(matching, p)
			weights = append(weights, p.Weight)
		}
	}
	if len(matching) == 0 {
		return DefaultKey(mode)
	}
	idx := weightedIndex(weights, rng)
	if idx < 0 {
		idx = rng.Intn(len(matching))
	}
	return models.Key{Tonic: matching[idx].Tonic, Mode: matching[idx].Mode}
}
