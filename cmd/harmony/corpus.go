package main

import (
	"fmt"
	"sort"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the progression corpus",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize patterns, keys and sections",
	RunE: func(cmd *cobra.Command, _ []string) error {
		composer, err := newComposer(loadConfig())
		if err != nil {
			return err
		}
		c := composer.Corpus()
		stats := c.Summary()
		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "Patterns:     %d (major %d, minor %d)\n",
			stats.Patterns, stats.ByMode[models.Major], stats.ByMode[models.Minor])
		fmt.Fprintf(w, "Key profiles: %d\n", stats.KeyProfiles)
		fmt.Fprintf(w, "Sections:     %v\n", stats.Sections)

		patterns := append([]models.ProgressionPattern(nil), c.Patterns()...)
		sort.SliceStable(patterns, func(i, j int) bool {
			return patterns[i].BaseWeight > patterns[j].BaseWeight
		})
		fmt.Fprintln(w, "Most common:")
		for i, p := range patterns {
			if i == 5 {
				break
			}
			fmt.Fprintf(w, "  %-20s %-5s count=%d weight=%.3f\n", p.String(), p.Mode, p.Count, p.BaseWeight)
		}
		return nil
	},
}

func init() {
	corpusCmd.AddCommand(corpusStatsCmd)
}
