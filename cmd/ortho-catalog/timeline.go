package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/internal/match"
	"github.com/broepke/ortho-catalog/internal/timeline"
	"github.com/broepke/ortho-catalog/pkg/types"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Import and link landmark timeline entries",
}

var timelineImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import timeline documents into the catalog",
	Long: `Import parses every .docx timeline document in a directory into
structured entries and replaces the stored timeline with them. With
--apply-matches the entries are immediately matched against the catalog
and linked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			return fmt.Errorf("no timeline directory: pass --dir")
		}
		applyMatches, _ := cmd.Flags().GetBool("apply-matches")

		entries, err := timeline.ImportDir(dir, os.Stdout)
		if err != nil {
			return err
		}

		store, err := catalog.Open(catalogConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.ReplaceLandmarks(cmd.Context(), entries)
		if err != nil {
			return err
		}
		fmt.Printf("\nImported %d timeline entries\n", n)

		if !applyMatches {
			return nil
		}
		_, err = match.LinkAll(cmd.Context(), store, matchConfig(cmd), true, os.Stdout)
		return err
	},
}

var timelineMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match unlinked timeline entries to catalog documents",
	Long: `Match scores every unlinked timeline entry against the catalog using
fuzzy title search plus author, year, and journal agreement. Without
--apply the matches are only reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apply, _ := cmd.Flags().GetBool("apply")

		store, err := catalog.Open(catalogConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = match.LinkAll(cmd.Context(), store, matchConfig(cmd), apply, os.Stdout)
		return err
	},
}

func matchConfig(cmd *cobra.Command) types.MatchConfig {
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")
	if minConfidence == 0 {
		minConfidence = viper.GetFloat64("match.min_confidence")
	}
	limit := viper.GetInt("match.candidate_limit")
	return types.MatchConfig{MinConfidence: minConfidence, CandidateLimit: limit}
}

func init() {
	timelineImportCmd.Flags().String("dir", "", "directory of .docx timeline documents")
	timelineImportCmd.Flags().Bool("apply-matches", false, "match and link entries after importing")
	timelineImportCmd.Flags().Float64("min-confidence", 0, "confidence floor for linking (default 0.4)")

	timelineMatchCmd.Flags().Bool("apply", false, "persist links instead of only reporting")
	timelineMatchCmd.Flags().Float64("min-confidence", 0, "confidence floor for linking (default 0.4)")

	timelineCmd.AddCommand(timelineImportCmd, timelineMatchCmd)
	rootCmd.AddCommand(timelineCmd)
}
