package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Conceptual-Machines/magda-harmony/internal/config"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/spf13/cobra"
)

var (
	replOutDir string
	replPlay   bool
)

func init() {
	replCmd.Flags().StringVar(&replOutDir, "out-dir", ".", "directory for the MIDI file of each prompt")
	replCmd.Flags().BoolVar(&replPlay, "play", true, "play each piece after generating it")
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Generate progressions interactively, one prompt per line",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		composer, err := newComposer(cfg)
		if err != nil {
			return err
		}
		return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), composer, cfg, replOutDir, replPlay)
	},
}

// runREPL reads prompts until EOF or "quit". A failing prompt is reported
// and the loop carries on.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, composer *services.Composer, cfg *config.Config, outDir string, play bool) error {
	scanner := bufio.NewScanner(in)
	n := 0
	fmt.Fprintln(out, "Describe a mood (\"quit\" to exit)")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if prompt == "quit" || prompt == "exit" {
			return nil
		}

		n++
		path := filepath.Join(outDir, fmt.Sprintf("progression-%03d.mid", n))
		err := runComposition(ctx, out, composer, cfg, models.CompositionRequest{Prompt: prompt}, outputOptions{
			out:  path,
			play: play,
		})
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}
