// Package main provides the sitegen CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cjwong/sitegen/internal/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	siteDir     string
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Static site builder for an academic homepage",
	Long: `sitegen builds a personal academic website from Markdown pages,
site metadata in YAML and a BibTeX bibliography.

The publication list is generated from the bibliography: entries are
grouped into Books, Articles, Chapters and Other Publications by type
and keywords, and linked to local documents, DOIs and URLs.

Commands output JSON by default; use --human for readable text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVarP(&siteDir, "dir", "C", ".", "Site base directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

func setup(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Optional; a missing .env is not an error
	_ = godotenv.Load(config.EnvPath(config.ExpandPath(siteDir)))
	return nil
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(siteDir)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
