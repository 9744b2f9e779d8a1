package main

import (
	"errors"

	"github.com/cjwong/sitegen/internal/bib"
	"github.com/cjwong/sitegen/internal/config"
	"github.com/cjwong/sitegen/internal/site"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site",
	Long: `Build the site: the home page, the content pages and the publication
list, written to the output directory.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	result, err := site.NewAssembler(cfg).Build()
	if err != nil {
		switch {
		case errors.Is(err, config.ErrSiteNotFound):
			exitWithError(ExitConfigError, "%v", err)
		case errors.Is(err, bib.ErrSyntax):
			exitWithError(ExitDataError, "building site: %v", err)
		}
		exitWithError(ExitError, "building site: %v", err)
	}

	log.Info().
		Str("output", result.OutputDir).
		Int("pages", len(result.Pages)).
		Int("publications", result.Publications).
		Msg("site built")

	if humanOutput {
		outputHuman("Built %d pages in %s (%d publications)\n", len(result.Pages), result.OutputDir, result.Publications)
		for _, page := range result.Pages {
			outputHuman("  %s\n", page)
		}
		return nil
	}
	return outputJSON(result)
}
