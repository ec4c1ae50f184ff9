package corpus

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/pkg/embedded"
)

// Corpus is the immutable data a generator samples from. Build it once and
// share it between requests; nothing mutates it after loading.
type Corpus struct {
	patterns []models.ProgressionPattern
	keys     []models.KeyProfile
	sections []models.SectionConfig
}

// Paths overrides individual embedded data files. Empty fields use the
// embedded default.
type Paths struct {
	Progressions string
	KeyProfiles  string
	Sections     string
}

// New builds a corpus from already loaded data
func New(patterns []models.ProgressionPattern, keys []models.KeyProfile, sections []models.SectionConfig) (*Corpus, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("progression corpus is empty")
	}
	return &Corpus{patterns: patterns, keys: keys, sections: sections}, nil
}

// Default loads the corpus embedded in the binary
func Default() (*Corpus, error) {
	return Load(Paths{})
}

// Load reads each data file from disk when a path is given, otherwise from
// the embedded copy.
func Load(paths Paths) (*Corpus, error) {
	patterns, err := loadWith(paths.Progressions, embedded.ProgressionsJSON, LoadPatterns)
	if err != nil {
		return nil, err
	}
	keys, err := loadWith(paths.KeyProfiles, embedded.KeyProfilesJSON, LoadKeyProfiles)
	if err != nil {
		return nil, err
	}
	sections, err := loadWith(paths.Sections, embedded.SectionsYAML, LoadSections)
	if err != nil {
		return nil, err
	}
	return New(patterns, keys, sections)
}

func loadWith[T any](path string, fallback []byte, decode func(io.Reader) (T, error)) (T, error) {
	if path == "" {
		return decode(bytes.NewReader(fallback))
	}
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	out, err := decode(f)
	if err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Patterns returns the progression patterns. Callers must not modify them.
func (c *Corpus) Patterns() []models.ProgressionPattern {
	return c.patterns
}

// KeyProfiles returns the weighted key profiles
func (c *Corpus) KeyProfiles() []models.KeyProfile {
	return c.keys
}

// Sections returns the default ordered section plan
func (c *Corpus) Sections() []models.SectionConfig {
	return c.sections
}

// SectionsByName picks sections from the plan in the requested order
func (c *Corpus) SectionsByName(names []string) ([]models.SectionConfig, error) {
	if len(names) == 0 {
		return c.sections, nil
	}
	byName := make(map[string]models.SectionConfig, len(c.sections))
	for _, s := range c.sections {
		byName[s.Name] = s
	}
	out := make([]models.SectionConfig, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// Stats summarizes the corpus for diagnostics
type Stats struct {
	Patterns    int                 `json:"patterns"`
	ByMode      map[models.Mode]int `json:"by_mode"`
	KeyProfiles int                 `json:"key_profiles"`
	Sections    []string            `json:"sections"`
}

// Summary counts patterns per mode and lists the section plan
func (c *Corpus) Summary() Stats {
	s := Stats{
		Patterns:    len(c.patterns),
		ByMode:      make(map[models.Mode]int),
		KeyProfiles: len(c.keys),
	}
	for _, p := range c.patterns {
		s.ByMode[p.Mode]++
	}
	for _, sec := range c.sections {
		s.Sections = append(s.Sections, sec.Name)
	}
	return s
}
