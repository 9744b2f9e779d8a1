package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the resolved configuration: sitegen.yml merged over the defaults,
with .env and SITEGEN_* environment overrides applied and paths made
absolute.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Root          string   `json:"root"`
	Content       string   `json:"content_dir"`
	Templates     string   `json:"templates_dir"`
	Output        string   `json:"output_dir"`
	Bibliography  string   `json:"bibliography"`
	Documents     string   `json:"documents"`
	Site          string   `json:"site"`
	HighlightName string   `json:"highlight_name"`
	Pages         []string `json:"pages"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	resp := ConfigResponse{
		Root:          cfg.Root(),
		Content:       cfg.ContentPath(""),
		Templates:     cfg.TemplatesPath(),
		Output:        cfg.OutputPath(),
		Bibliography:  cfg.BibliographyPath(),
		Documents:     cfg.DocumentsPath(),
		Site:          cfg.SitePath(),
		HighlightName: cfg.HighlightName,
	}
	for _, p := range cfg.Pages {
		resp.Pages = append(resp.Pages, fmt.Sprintf("%s -> %s", p.Source, p.Output))
	}

	if !humanOutput {
		return outputJSON(resp)
	}

	fmt.Printf("root:           %s\n", resp.Root)
	fmt.Printf("content_dir:    %s\n", resp.Content)
	fmt.Printf("templates_dir:  %s\n", resp.Templates)
	fmt.Printf("output_dir:     %s\n", resp.Output)
	fmt.Printf("bibliography:   %s\n", resp.Bibliography)
	fmt.Printf("documents:      %s\n", resp.Documents)
	fmt.Printf("site:           %s\n", resp.Site)
	fmt.Printf("highlight_name: %s\n", resp.HighlightName)
	fmt.Println("pages:")
	for _, p := range resp.Pages {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
