package models

// SectionConfig describes the harmonic constraints and bias adjustment of one
// section of a piece. Nil fields take permissive defaults.
type SectionConfig struct {
	Name           string              `yaml:"name" json:"name"`
	MotionMin      *float64            `yaml:"motion_min,omitempty" json:"motion_min,omitempty"`
	MotionMax      *float64            `yaml:"motion_max,omitempty" json:"motion_max,omitempty"`
	DominantMin    *int                `yaml:"dominant_min,omitempty" json:"dominant_min,omitempty"`
	DominantMax    *int                `yaml:"dominant_max,omitempty" json:"dominant_max,omitempty"`
	EndingDominant *bool               `yaml:"ending_dominant,omitempty" json:"ending_dominant,omitempty"`
	EndingTonic    *bool               `yaml:"ending_tonic,omitempty" json:"ending_tonic,omitempty"`
	BiasDelta      map[Emotion]float64 `yaml:"bias_delta,omitempty" json:"bias_delta,omitempty"`
}
