package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/broepke/ortho-catalog/internal/catalog"
	"github.com/broepke/ortho-catalog/internal/scan"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the document catalog from the library tree",
	Long: `Index walks the article library, infers metadata from each filename,
and writes one catalog record per document. The full-text search index
over filename, title, author, and journal is maintained automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			root = viper.GetString("scan.library_root")
		}
		if root == "" {
			return fmt.Errorf("no library root: pass --root or set scan.library_root")
		}
		replace, _ := cmd.Flags().GetBool("replace")

		store, err := catalog.Open(catalogConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = scan.Index(cmd.Context(), store, root, replace, os.Stdout)
		return err
	},
}

func init() {
	indexCmd.Flags().String("root", "", "library root directory")
	indexCmd.Flags().Bool("replace", false, "clear the catalog before indexing")

	rootCmd.AddCommand(indexCmd)
}
