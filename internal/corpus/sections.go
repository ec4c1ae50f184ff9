package corpus

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
)

type sectionPlan struct {
	Sections []models.SectionConfig `yaml:"sections"`
}

// LoadSections decodes an ordered section plan from YAML
func LoadSections(r io.Reader) ([]models.SectionConfig, error) {
	var plan sectionPlan
	if err := yaml.NewDecoder(r).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode section plan: %w", err)
	}
	if len(plan.Sections) == 0 {
		return nil, fmt.Errorf("section plan has no sections")
	}

	seen := make(map[string]bool, len(plan.Sections))
	for i, s := range plan.Sections {
		if s.Name == "" {
			return nil, fmt.Errorf("section %d has no name", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate section name %q", s.Name)
		}
		seen[s.Name] = true

		if s.MotionMin != nil && s.MotionMax != nil && *s.MotionMin > *s.MotionMax {
			return nil, fmt.Errorf("section %q: motion_min %v exceeds motion_max %v", s.Name, *s.MotionMin, *s.MotionMax)
		}
		if s.DominantMin != nil && s.DominantMax != nil && *s.DominantMin > *s.DominantMax {
			return nil, fmt.Errorf("section %q: dominant_min %d exceeds dominant_max %d", s.Name, *s.DominantMin, *s.DominantMax)
		}
		for id := range s.BiasDelta {
			if !models.IsKnownEmotion(id) {
				return nil, fmt.Errorf("section %q: unknown emotion %q in bias_delta", s.Name, id)
			}
		}
	}
	return plan.Sections, nil
}
