package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
// Note: This is a stateless service - generated pieces are never stored
type Config struct {
	// Environment
	Environment string
	Port        string

	// Data overrides (empty = embedded defaults)
	CorpusPath      string // progression pattern JSON
	LexiconPath     string // phrase lexicon JSON
	KeyProfilesPath string // key profile JSON
	SectionsPath    string // section plan YAML

	// Tempo range mapped from the emotion bias
	MinBPM int
	MaxBPM int

	// Playback (CLI only)
	SynthBinary string
	SoundFont   string

	// HTTP
	CORSOrigins []string

	// Observability
	SentryDSN string // Sentry DSN for error tracking
}

func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		Port:            getEnv("PORT", "8080"),
		CorpusPath:      getEnv("CORPUS_PATH", ""),
		LexiconPath:     getEnv("LEXICON_PATH", ""),
		KeyProfilesPath: getEnv("KEY_PROFILES_PATH", ""),
		SectionsPath:    getEnv("SECTIONS_PATH", ""),
		MinBPM:          getEnvInt("DEFAULT_BPM_MIN", 70),
		MaxBPM:          getEnvInt("DEFAULT_BPM_MAX", 150),
		SynthBinary:     getEnv("SYNTH_BINARY", "/usr/bin/fluidsynth"),
		SoundFont:       getEnv("SOUNDFONT_PATH", "/usr/share/sounds/sf2/default-GM.sf2"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
