package main

import (
	"strings"

	"github.com/cjwong/sitegen/internal/publication"
	"github.com/cjwong/sitegen/internal/site"
	"github.com/spf13/cobra"
)

// ListTitleMaxLen is the title width in human publication listings.
const ListTitleMaxLen = 70

func init() {
	rootCmd.AddCommand(publicationsCmd)
}

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"pubs"},
	Short:   "Print the publication list",
	Long:    `Print the publication list built from the bibliography, without writing any pages.`,
	Args:    cobra.NoArgs,
	RunE:    runPublications,
}

func runPublications(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	pubs, err := site.NewAssembler(cfg).LoadPublications()
	if err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}

	if humanOutput {
		printPublicationsHuman(pubs.List)
		return nil
	}
	return outputJSON(pubs.List)
}

func printPublicationsHuman(list publication.List) {
	if len(list.Sections) == 0 {
		outputHuman("No publications listed.\n")
		return
	}

	for i, section := range list.Sections {
		if i > 0 {
			outputHuman("\n")
		}
		outputHuman("%s (%d)\n", section.Title, len(section.Items))
		for _, item := range section.Items {
			year := item.Year
			if year == "" {
				year = "----"
			}
			outputHuman("  %-6s %s\n", year, truncateString(item.Title, ListTitleMaxLen))
			if item.Authors != "" {
				outputHuman("         %s\n", plainText(item.Authors))
			}
			if item.Venue != "" {
				outputHuman("         %s\n", plainText(item.Venue))
			}
			if len(item.Links) > 0 {
				labels := make([]string, len(item.Links))
				for j, l := range item.Links {
					labels[j] = l.Label
				}
				outputHuman("         [%s]\n", strings.Join(labels, ", "))
			}
		}
	}
}
