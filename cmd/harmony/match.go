package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [prompt]",
	Short: "Show the emotion bias a prompt maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		composer, err := newComposer(loadConfig())
		if err != nil {
			return err
		}
		_, diagnostics := composer.Match(strings.Join(args, " "))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	},
}
