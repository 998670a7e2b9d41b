package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/internal/scan"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Execute approved rename proposals",
	Long: `Apply reads a reviewed proposal file, renames every approved file to
its suggested canonical name, and updates the catalog. Name collisions in
the target folder get a numeric suffix. Executed renames are recorded in
a rollback manifest next to the input file. The input is rewritten with
terminal statuses, so a partially failed run can be re-applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			root = viper.GetString("scan.library_root")
		}
		if root == "" {
			return fmt.Errorf("no library root: pass --root or set scan.library_root")
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		proposals, err := scan.ReadReviewYAML(yamlInput(input))
		if err != nil {
			return err
		}
		// Reviewers usually edit the CSV; fold its statuses back in when it
		// sits next to the YAML detail file.
		if statuses, err := scan.ReadReviewCSV(input); err == nil {
			scan.MergeStatuses(proposals, statuses)
		}

		store, err := catalog.Open(catalogConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		applier := &scan.Applier{
			Root:         root,
			Store:        store,
			DryRun:       dryRun,
			ManifestPath: manifestPath(input),
		}
		if _, err := applier.Apply(cmd.Context(), proposals, os.Stdout); err != nil {
			return err
		}
		if dryRun {
			return nil
		}
		return scan.WriteReviewYAML(yamlInput(input), proposals)
	},
}

// yamlInput maps a review input path to the YAML detail file: a .csv
// argument refers to its sibling .yaml.
func yamlInput(input string) string {
	if strings.EqualFold(filepath.Ext(input), ".csv") {
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".yaml"
	}
	return input
}

func manifestPath(input string) string {
	dir := filepath.Dir(input)
	return filepath.Join(dir, "rollback.yaml")
}

func init() {
	applyCmd.Flags().String("input", "review.csv", "reviewed proposal file (.csv or .yaml)")
	applyCmd.Flags().String("root", "", "library root directory")
	applyCmd.Flags().Bool("dry-run", false, "print the rename plan without touching files")

	rootCmd.AddCommand(applyCmd)
}
