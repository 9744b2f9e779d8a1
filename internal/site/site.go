// Package site assembles the static website: it loads site metadata,
// renders Markdown content and the publication list through the HTML
// templates, and writes the pages.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cjwong/sitegen/internal/bib"
	"github.com/cjwong/sitegen/internal/config"
	"github.com/cjwong/sitegen/internal/publication"
	"github.com/rs/zerolog/log"
)

// Fixed pages.
const (
	IndexSource        = "index.md"
	IndexOutput        = "index.html"
	PublicationsTitle  = "Publications"
	PublicationsOutput = "published.html"
)

// Assembler builds the site described by a Config.
type Assembler struct {
	cfg *config.Config

	// Now supplies the build year shown in page footers.
	Now func() time.Time
}

// Result summarizes a build.
type Result struct {
	OutputDir    string   `json:"output_dir"`
	Pages        []string `json:"pages"`
	Publications int      `json:"publications"`
	Duplicates   []string `json:"duplicates,omitempty"`
}

// NewAssembler creates an Assembler for cfg.
func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg, Now: time.Now}
}

// Publications holds everything derived from the bibliography.
type Publications struct {
	Bibliography *bib.Bibliography
	Documents    map[string]string
	List         publication.List
}

// LoadPublications parses the bibliography and builds the publication list.
func (a *Assembler) LoadPublications() (*Publications, error) {
	docs, err := config.LoadDocuments(a.cfg.DocumentsPath())
	if err != nil {
		return nil, err
	}

	bibliography, err := bib.ParseFile(a.cfg.BibliographyPath())
	if err != nil {
		return nil, err
	}

	builder, err := publication.NewBuilder(publication.Options{
		Documents: docs,
		Highlight: a.cfg.HighlightName,
	})
	if err != nil {
		return nil, err
	}

	return &Publications{
		Bibliography: bibliography,
		Documents:    docs,
		List:         builder.Build(bibliography.Entries),
	}, nil
}

// Build renders and writes every page.
func (a *Assembler) Build() (*Result, error) {
	site, err := config.LoadSite(a.cfg.SitePath())
	if err != nil {
		return nil, err
	}

	pubs, err := a.LoadPublications()
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(a.cfg.TemplatesPath())
	if err != nil {
		return nil, err
	}

	outDir := a.cfg.OutputPath()
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{
		OutputDir:    outDir,
		Publications: pubs.List.Count(),
		Duplicates:   pubs.Bibliography.Duplicates,
	}
	common := Context{Site: site, BuildYear: a.Now().Year()}

	// Home page
	body, err := RenderMarkdownFile(a.cfg.ContentPath(IndexSource))
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", IndexOutput, err)
	}
	home := common
	home.Title = site.Title
	home.Description = site.Description
	home.BodyClass = "home"
	home.CurrentURL = IndexOutput
	home.Body = body
	if err := a.writePage(renderer, IndexTemplate, IndexOutput, home, result); err != nil {
		return nil, err
	}

	// Content pages
	for _, p := range a.cfg.Pages {
		body, err := RenderMarkdownFile(a.cfg.ContentPath(p.Source))
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", p.Output, err)
		}
		ctx := common
		ctx.Title = p.Title
		ctx.Description = site.Description
		ctx.Kicker = p.Kicker
		ctx.Intro = p.Intro
		ctx.BodyClass = "page"
		ctx.CurrentURL = p.Output
		ctx.Body = body
		if err := a.writePage(renderer, PageTemplate, p.Output, ctx, result); err != nil {
			return nil, err
		}
	}

	// Publications page
	ctx := common
	ctx.Title = PublicationsTitle
	ctx.Description = site.Description
	ctx.BodyClass = "page"
	ctx.CurrentURL = PublicationsOutput
	ctx.Publications = pubs.List
	if err := a.writePage(renderer, PublicationsTemplate, PublicationsOutput, ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (a *Assembler) writePage(r *Renderer, tmpl, output string, ctx Context, result *Result) error {
	html, err := r.RenderPage(tmpl, ctx)
	if err != nil {
		return fmt.Errorf("page %s: %w", output, err)
	}

	path := filepath.Join(result.OutputDir, output)
	if err := os.WriteFile(path, html, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	log.Info().Str("page", output).Int("bytes", len(html)).Msg("wrote page")
	result.Pages = append(result.Pages, output)
	return nil
}
