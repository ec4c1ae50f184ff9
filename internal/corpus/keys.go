package corpus

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/theory"
)

// LoadKeyProfiles decodes and validates a JSON array of key profiles
func LoadKeyProfiles(r io.Reader) ([]models.KeyProfile, error) {
	var profiles []models.KeyProfile
	if err := json.NewDecoder(r).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("failed to decode key profiles: %w", err)
	}
	for i, p := range profiles {
		if _, err := theory.PitchClass(p.Tonic); err != nil {
			return nil, fmt.Errorf("key profile %d (%s): %w", i, p.KeyID, err)
		}
		if !p.Mode.Valid() {
			return nil, fmt.Errorf("key profile %d (%s): unknown mode %q", i, p.KeyID, p.Mode)
		}
		if p.Weight < 0 {
			return nil, fmt.Errorf("key profile %d (%s): negative weight %v", i, p.KeyID, p.Weight)
		}
	}
	return profiles, nil
}
