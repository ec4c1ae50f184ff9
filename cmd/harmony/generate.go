package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/config"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/render"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/spf13/cobra"
)

var (
	generateSeed     int64
	generateOut      string
	generatePlay     bool
	generateJSON     bool
	generateSections []string
)

func init() {
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed for a reproducible piece")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "progression.mid", "MIDI output file (empty to skip)")
	generateCmd.Flags().BoolVar(&generatePlay, "play", false, "play the MIDI file through the synthesizer")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the composition as JSON")
	generateCmd.Flags().StringSliceVar(&generateSections, "sections", nil, "sections to generate, in order (default: full plan)")
}

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate one progression from a prompt",
	Long: `Generate a multi-section progression for the prompt and write it as MIDI.

Examples:
  harmony generate "a very dark forest walk"
  harmony generate "sunny day" --seed 42 --out sunny.mid --play
  harmony generate "calm evening" --sections verse,chorus --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		composer, err := newComposer(cfg)
		if err != nil {
			return err
		}

		req := models.CompositionRequest{
			Prompt:   strings.Join(args, " "),
			Sections: generateSections,
		}
		if cmd.Flags().Changed("seed") {
			seed := generateSeed
			req.Seed = &seed
		}

		return runComposition(cmd.Context(), cmd.OutOrStdout(), composer, cfg, req, outputOptions{
			out:  generateOut,
			play: generatePlay,
			json: generateJSON,
		})
	},
}

type outputOptions struct {
	out  string
	play bool
	json bool
}

// runComposition composes, prints, writes and optionally plays one piece.
// A failed playback is reported but does not fail the command.
func runComposition(ctx context.Context, w io.Writer, composer *services.Composer, cfg *config.Config, req models.CompositionRequest, opts outputOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	comp, err := composer.Compose(ctx, req)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(comp); err != nil {
			return err
		}
	} else {
		printComposition(w, comp)
	}

	if opts.out == "" {
		return nil
	}
	data, err := composer.RenderMIDI(ctx, comp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}
	if !opts.json {
		fmt.Fprintf(w, "Wrote %s\n", opts.out)
	}

	if opts.play {
		synth := render.NewSynth(cfg.SynthBinary, cfg.SoundFont)
		if err := synth.Play(ctx, opts.out); err != nil {
			fmt.Fprintf(w, "Playback failed: %v\n", err)
		}
	}
	return nil
}

func printComposition(w io.Writer, comp *models.Composition) {
	fmt.Fprintf(w, "Prompt:   %s\n", comp.Prompt)
	fmt.Fprintf(w, "Mood:     %s\n", formatBias(comp.Bias))
	fmt.Fprintf(w, "Key:      %s  Tempo: %d BPM  Seed: %d\n", comp.Key, comp.BPM, comp.Seed)
	offset := 0
	for _, s := range comp.Sections {
		symbols := make([]string, len(s.Annotated))
		for i := range s.Annotated {
			symbols[i] = comp.Chords[offset+i].ChordSymbol
		}
		offset += len(s.Annotated)

		note := ""
		switch {
		case s.Fallback:
			note = " (fallback)"
		case s.Relaxed:
			note = " (relaxed)"
		}
		fmt.Fprintf(w, "%-8s  %-28s %s%s\n", s.Name+":", strings.Join(s.Annotated, " "), strings.Join(symbols, " "), note)
	}
}

func formatBias(bias models.EmotionBias) string {
	parts := make([]string, 0, len(models.AllEmotions))
	for _, id := range models.AllEmotions {
		if v := bias[id]; v > 0 {
			parts = append(parts, fmt.Sprintf("%s=%.2f", id, v))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
