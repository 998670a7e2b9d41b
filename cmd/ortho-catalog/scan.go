package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/broepke/ortho-catalog/internal/lookup"
	"github.com/broepke/ortho-catalog/internal/pdftext"
	"github.com/broepke/ortho-catalog/internal/scan"
	"github.com/broepke/ortho-catalog/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Propose canonical renames for library articles",
	Long: `Scan infers bibliographic metadata for each article from its filename
and first pages of text, merges the sources, and writes rename proposals
to review.csv and review.yaml for human triage. Nothing is renamed until
the proposals are approved and applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			root = viper.GetString("scan.library_root")
		}
		if root == "" {
			return fmt.Errorf("no library root: pass --root or set scan.library_root")
		}

		var sub types.Subspecialty
		if raw, _ := cmd.Flags().GetString("subspecialty"); raw != "" {
			parsed, err := types.ParseSubspecialty(raw)
			if err != nil {
				return err
			}
			sub = parsed
		}
		limit, _ := cmd.Flags().GetInt("limit")
		useLookup, _ := cmd.Flags().GetBool("lookup")
		outDir, _ := cmd.Flags().GetString("output-dir")
		if outDir == "" {
			outDir = viper.GetString("scan.output_dir")
		}
		if outDir == "" {
			outDir = "."
		}
		backend, _ := cmd.Flags().GetString("backend")
		if backend == "" {
			backend = viper.GetString("scan.text_backend")
		}

		extractor, err := pdftext.NewExtractor(backend)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v; proposals will use filenames only\n", err)
			extractor = nil
		}

		scanner := &scan.Scanner{
			Root:      root,
			Workers:   viper.GetInt("scan.workers"),
			Extractor: extractor,
		}
		if useLookup {
			cfg := lookupConfig()
			if cfg.APIKey == "" {
				return fmt.Errorf("lookup requested but no scopus-api-key secret or lookup.api_key configured")
			}
			scanner.Lookup = lookup.NewClient(cfg)
		}

		files, err := scan.Walk(root, sub, limit)
		if err != nil {
			return err
		}
		proposals, _, err := scanner.Scan(cmd.Context(), files, os.Stdout)
		if err != nil {
			return err
		}

		csvPath := filepath.Join(outDir, "review.csv")
		yamlPath := filepath.Join(outDir, "review.yaml")
		if err := scan.WriteReviewCSV(csvPath, proposals); err != nil {
			return err
		}
		if err := scan.WriteReviewYAML(yamlPath, proposals); err != nil {
			return err
		}
		fmt.Printf("\nReview artifacts: %s, %s\n", csvPath, yamlPath)
		return nil
	},
}

func init() {
	scanCmd.Flags().String("root", "", "library root directory")
	scanCmd.Flags().String("subspecialty", "", "restrict to one subspecialty folder")
	scanCmd.Flags().Int("limit", 0, "stop after this many files (0 = no limit)")
	scanCmd.Flags().Bool("lookup", false, "enrich metadata from the Scopus API")
	scanCmd.Flags().String("output-dir", "", "directory for review artifacts (default .)")
	scanCmd.Flags().String("backend", "", "page-text backend: pdftotext or container (default pdftotext)")

	rootCmd.AddCommand(scanCmd)
}
