package main

import (
	"os"

	"github.com/cjwong/sitegen/internal/check"
	"github.com/cjwong/sitegen/internal/site"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify site integrity",
	Long: `Verify site integrity, checking for duplicate citation keys, document
mappings without a bibliography entry, missing or unreadable documents,
DOI mismatches in linked PDFs and broken local links in the built pages.

Run after build. Exits with status 3 if any issue is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	pubs, err := site.NewAssembler(cfg).LoadPublications()
	if err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}

	report, err := check.New(cfg.OutputPath()).Run(pubs.Bibliography, pubs.Documents)
	if err != nil {
		exitWithError(ExitError, "checking site: %v", err)
	}

	if humanOutput {
		printCheckHuman(report)
	} else if err := outputJSON(report); err != nil {
		return err
	}

	if !report.OK() {
		os.Exit(ExitDataError)
	}
	return nil
}

func printCheckHuman(report *check.Report) {
	outputHuman("Checked %d entries, %d documents, %d pages\n", report.Entries, report.Documents, report.Pages)
	if report.OK() {
		outputHuman("No issues found.\n")
		return
	}

	outputHuman("Found %d issue(s):\n", len(report.Issues))
	for _, issue := range report.Issues {
		outputHuman("  %-17s %s", issue.Type, issue.ID)
		if issue.Path != "" {
			outputHuman(" %s", issue.Path)
		}
		if issue.Reason != "" {
			outputHuman(": %s", issue.Reason)
		}
		outputHuman("\n")
	}
}
