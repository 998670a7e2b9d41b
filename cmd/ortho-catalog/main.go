// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ortho-catalog CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/broepke/ortho-catalog/internal/secrets"
	"github.com/broepke/ortho-catalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the loaded secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the ortho-catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "ortho-catalog",
	Short: "Catalog and curation tools for a clinical article library",
	Long: `ortho-catalog maintains a searchable catalog over a folder tree of
clinical journal articles. It infers bibliographic metadata from filenames
and page text, proposes canonical renames for human review, links curated
timeline entries to catalog documents, and finds duplicate files.

Each pipeline stage is a subcommand: index, scan, apply, dupes, and
timeline.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ortho-catalog.yaml or ~/.config/ortho-catalog/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "catalog database path (default: catalog/ortho.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ortho-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ortho-catalog"))
		}
	}

	viper.SetEnvPrefix("ORTHO_CATALOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// catalogConfig resolves the store configuration from the --db flag and
// the config file.
func catalogConfig() types.CatalogConfig {
	dbPath, _ := rootCmd.PersistentFlags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("catalog.db_path")
	}
	return types.CatalogConfig{DBPath: dbPath}
}

// lookupConfig resolves the external-lookup configuration.
func lookupConfig() types.LookupConfig {
	cfg := types.LookupConfig{
		APIKey:          secretDefault("scopus-api-key", viper.GetString("lookup.api_key")),
		RequestInterval: viper.GetDuration("lookup.request_interval"),
		MaxRetries:      viper.GetInt("lookup.max_retries"),
	}
	cfg.Timeout = viper.GetDuration("lookup.timeout")
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
