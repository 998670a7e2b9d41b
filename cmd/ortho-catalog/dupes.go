package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/broepke/ortho-catalog/internal/dedupe"
	"github.com/broepke/ortho-catalog/internal/scan"
	"github.com/broepke/ortho-catalog/pkg/types"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Find duplicate articles across library folders",
	Long: `Dupes groups files from a scan's proposal output by exact filename,
by shared canonical suggested name, and optionally by content hash. Each
group keeps one file, preferring specialty folders over the general
catch-all and larger files over smaller. By default the groups are only
reported; --delete removes the non-kept files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			root = viper.GetString("dedupe.library_root")
		}
		if root == "" {
			root = viper.GetString("scan.library_root")
		}
		if root == "" {
			return fmt.Errorf("no library root: pass --root or set scan.library_root")
		}
		checkContent, _ := cmd.Flags().GetBool("check-content")
		doDelete, _ := cmd.Flags().GetBool("delete")

		proposals, err := scan.ReadReviewYAML(yamlInput(input))
		if err != nil {
			return err
		}
		entries := make([]dedupe.Entry, len(proposals))
		for i, p := range proposals {
			entries[i] = dedupe.Entry{
				Filename:      p.CurrentFilename,
				Path:          p.CurrentPath,
				Subspecialty:  p.Subspecialty,
				SuggestedName: p.SuggestedName,
			}
		}

		finder := dedupe.NewFinder(types.DedupeConfig{
			LibraryRoot:   root,
			CheckContent:  checkContent,
			SizeTolerance: viper.GetFloat64("dedupe.size_tolerance"),
		})
		groups := finder.FindGroups(entries, os.Stdout)

		reportPath := filepath.Join(filepath.Dir(input), "dupes.yaml")
		if err := writeDupesReport(reportPath, groups); err != nil {
			return err
		}
		printGroups(groups)
		fmt.Printf("Report: %s\n", reportPath)

		if !doDelete {
			fmt.Println("Dry run; pass --delete to remove non-kept files.")
			return nil
		}
		finder.Remove(groups, os.Stdout)
		return nil
	},
}

func printGroups(groups []types.DuplicateGroup) {
	counts := map[types.DuplicateGroupType]int{}
	for _, g := range groups {
		counts[g.Type]++
		fmt.Printf("\n[%s] %s\n", g.Type, g.Key)
		for _, f := range g.Files {
			mark := " "
			if f.Keep {
				mark = "*"
			}
			fmt.Printf("  %s %s (%d bytes, %s)\n", mark, f.Path, f.Size, f.Subspecialty)
		}
	}
	fmt.Printf("\nFound %d duplicate groups (%d exact, %d suggested, %d content)\n",
		len(groups), counts[types.GroupExactFilename],
		counts[types.GroupSuggestedFilename], counts[types.GroupContentHash])
}

func writeDupesReport(path string, groups []types.DuplicateGroup) error {
	data, err := yaml.Marshal(struct {
		Groups []types.DuplicateGroup `yaml:"groups"`
	}{Groups: groups})
	if err != nil {
		return fmt.Errorf("marshalling duplicate report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing duplicate report %s: %w", path, err)
	}
	return nil
}

func init() {
	dupesCmd.Flags().String("input", "review.yaml", "scan proposal file (.csv or .yaml)")
	dupesCmd.Flags().String("root", "", "library root directory")
	dupesCmd.Flags().Bool("check-content", false, "hash ungrouped files to catch renamed copies")
	dupesCmd.Flags().Bool("delete", false, "delete non-kept files (default is report only)")

	rootCmd.AddCommand(dupesCmd)
}
