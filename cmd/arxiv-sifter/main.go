// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-sifter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-sifter CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-sifter",
	Short: "Find recent arXiv papers for a venue and keep the ones with code",
	Long: `arxiv-sifter queries the arXiv API for papers whose comment field mentions
a venue (or any recent paper when no venue is given), filters them by title
and abstract keywords, checks each survivor for an open-source code link,
and writes the accepted set to a timestamped xlsx spreadsheet.

Processing is strictly sequential and the spreadsheet is written once, at the
end of a fully successful run. Use the history subcommand to list past runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-sifter.yaml or ~/.config/arxiv-sifter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-sifter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-sifter"))
		}
	}

	viper.SetEnvPrefix("ARXIV_SIFTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// userAgent identifies the tool to arXiv. Setting contact_email in the
// config file (or ARXIV_SIFTER_CONTACT_EMAIL) adds a reachable address,
// which arXiv asks automated clients to provide.
func userAgent() string {
	ua := fmt.Sprintf("arxiv-sifter/%s", version)
	if email := viper.GetString("contact_email"); email != "" {
		ua += fmt.Sprintf(" (mailto:%s)", email)
	}
	return ua
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
