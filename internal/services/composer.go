package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/magda-harmony/internal/config"
	"github.com/Conceptual-Machines/magda-harmony/internal/corpus"
	"github.com/Conceptual-Machines/magda-harmony/internal/emotion"
	"github.com/Conceptual-Machines/magda-harmony/internal/harmony"
	"github.com/Conceptual-Machines/magda-harmony/internal/logger"
	"github.com/Conceptual-Machines/magda-harmony/internal/metrics"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/render"
	"github.com/google/uuid"
)

// ErrUnknownSection is returned when a request names a section missing from the plan
var ErrUnknownSection = errors.New("unknown section")

// ComposerOptions tunes a Composer. Zero values use the defaults.
type ComposerOptions struct {
	MinBPM        int
	MaxBPM        int
	BeatsPerChord float64

	CloudWatch *metrics.Client
	Sentry     *metrics.SentryMetrics
}

const (
	defaultMinBPM = 70
	defaultMaxBPM = 150
)

// Composer turns prompts into compositions. It is safe for concurrent use:
// the lexicon and corpus are read-only and each call owns its random source.
type Composer struct {
	lexicon   *emotion.Lexicon
	corpus    *corpus.Corpus
	generator *harmony.Generator
	opts      ComposerOptions
}

// NewComposer wires a lexicon and corpus into a composer
func NewComposer(lexicon *emotion.Lexicon, c *corpus.Corpus, opts ComposerOptions) (*Composer, error) {
	if lexicon == nil {
		return nil, fmt.Errorf("lexicon is required")
	}
	if c == nil {
		return nil, fmt.Errorf("corpus is required")
	}
	generator, err := harmony.NewGenerator(c.Patterns())
	if err != nil {
		return nil, err
	}
	if opts.MinBPM <= 0 {
		opts.MinBPM = defaultMinBPM
	}
	if opts.MaxBPM <= 0 {
		opts.MaxBPM = defaultMaxBPM
	}
	if opts.BeatsPerChord <= 0 {
		opts.BeatsPerChord = render.DefaultBeatsPerChord
	}
	return &Composer{
		lexicon:   lexicon,
		corpus:    c,
		generator: generator,
		opts:      opts,
	}, nil
}

// NewComposerFromConfig loads the lexicon and corpus named by cfg, falling
// back to the embedded data for any path left empty.
func NewComposerFromConfig(cfg *config.Config, opts ComposerOptions) (*Composer, error) {
	lexicon, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}
	c, err := corpus.Load(corpus.Paths{
		Progressions: cfg.CorpusPath,
		KeyProfiles:  cfg.KeyProfilesPath,
		Sections:     cfg.SectionsPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if opts.MinBPM == 0 {
		opts.MinBPM = cfg.MinBPM
	}
	if opts.MaxBPM == 0 {
		opts.MaxBPM = cfg.MaxBPM
	}

	logger.Info("Harmony data loaded", logger.Fields{
		"phrases":  lexicon.Len(),
		"patterns": len(c.Patterns()),
		"keys":     len(c.KeyProfiles()),
		"sections": len(c.Sections()),
	})
	return NewComposer(lexicon, c, opts)
}

func loadLexicon(path string) (*emotion.Lexicon, error) {
	if path == "" {
		return emotion.DefaultLexicon()
	}
	lexicon, err := emotion.LoadLexiconFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lexicon, nil
}

// SetCloudWatch attaches a CloudWatch client after construction. Call it
// before the composer is shared.
func (s *Composer) SetCloudWatch(cw *metrics.Client) {
	s.opts.CloudWatch = cw
}

// Corpus returns the corpus the composer samples from
func (s *Composer) Corpus() *corpus.Corpus {
	return s.corpus
}

// LexiconSize returns the number of phrases the matcher knows
func (s *Composer) LexiconSize() int {
	return s.lexicon.Len()
}

// Match maps a prompt to its emotion bias without generating anything
func (s *Composer) Match(prompt string) (models.EmotionBias, models.MatchDiagnostics) {
	return s.lexicon.Match(prompt)
}

// Compose generates a piece for the request. The same prompt, seed and
// section list always produce the same composition apart from its ID.
func (s *Composer) Compose(ctx context.Context, req models.CompositionRequest) (*models.Composition, error) {
	start := time.Now()

	sections, err := s.corpus.SectionsByName(req.Sections)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSection, err)
	}

	seed := harmony.NewSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := harmony.NewRand(seed)

	bias, diagnostics := s.lexicon.Match(req.Prompt)

	result, err := s.generator.Generate(bias, sections, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate progression: %w", err)
	}

	mode := result.Mode()
	key := harmony.ChooseKey(s.corpus.KeyProfiles(), mode, rng)
	bpm := harmony.ChooseTempo(bias, s.opts.MinBPM, s.opts.MaxBPM)

	chords, err := render.ProgressionToChordEvents(result.Annotated, result.Functions, key, s.opts.BeatsPerChord)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chords: %w", err)
	}

	comp := &models.Composition{
		ID:          uuid.New().String(),
		Prompt:      req.Prompt,
		Seed:        seed,
		Bias:        bias,
		Diagnostics: &diagnostics,
		Sections:    make([]models.SectionResult, 0, len(result.Sections)),
		Annotated:   result.Annotated,
		Chords:      chords,
		Key:         key,
		BPM:         bpm,
	}

	relaxed, fallbacks := 0, 0
	for _, outcome := range result.Sections {
		if outcome.Relaxed {
			relaxed++
		}
		if outcome.Fallback {
			fallbacks++
		}
		comp.Sections = append(comp.Sections, models.SectionResult{
			Name:      outcome.Name,
			Roman:     outcome.Pattern.RomanSequence,
			Functions: outcome.Pattern.FunctionSequence,
			Mode:      outcome.Pattern.Mode,
			Annotated: outcome.Annotated,
			Bias:      outcome.Bias,
			Relaxed:   outcome.Relaxed,
			Fallback:  outcome.Fallback,
		})
	}

	duration := time.Since(start)
	logger.LogComposition(ctx, comp.ID, duration, logger.Fields{
		"sections":  len(comp.Sections),
		"relaxed":   relaxed,
		"fallbacks": fallbacks,
		"key":       key.String(),
		"bpm":       bpm,
		"chords":    strings.Join(comp.Symbols(), " "),
	})
	if s.opts.Sentry != nil {
		s.opts.Sentry.RecordComposition(ctx, comp.ID, string(mode), len(comp.Sections), relaxed, fallbacks, duration)
	}
	s.opts.CloudWatch.RecordComposition(string(mode), len(comp.Sections), relaxed, fallbacks, duration)

	return comp, nil
}

// RenderMIDI voices a composition as block chords and returns a standard MIDI file
func (s *Composer) RenderMIDI(ctx context.Context, comp *models.Composition) ([]byte, error) {
	var buf bytes.Buffer
	err := render.RenderComposition(&buf, comp)
	if s.opts.Sentry != nil {
		s.opts.Sentry.RecordRender(ctx, comp.ID, buf.Len(), err)
	}
	s.opts.CloudWatch.RecordRender(err == nil, buf.Len())
	if err != nil {
		logger.Error("Failed to render MIDI", err, logger.Fields{"composition_id": comp.ID})
		return nil, err
	}
	return buf.Bytes(), nil
}
