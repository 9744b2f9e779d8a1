package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cjwong/sitegen/internal/config"
	"github.com/cjwong/sitegen/internal/publication"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

// Template names.
const (
	BaseTemplate         = "base.html"
	IndexTemplate        = "index.html"
	PageTemplate         = "page.html"
	PublicationsTemplate = "publications.html"
)

var templateNames = []string{BaseTemplate, IndexTemplate, PageTemplate, PublicationsTemplate}

// Context is the data every template receives. Fields that do not apply
// to a template are left zero.
type Context struct {
	Site      *config.Site
	BuildYear int

	Title       string
	Description string
	Kicker      string
	Intro       string
	BodyClass   string
	CurrentURL  string

	Body         template.HTML    // Rendered Markdown of the page
	Content      template.HTML    // Rendered page body, for the base template
	Publications publication.List // Publications page only
}

var funcs = template.FuncMap{
	// safe marks builder output (author and venue fragments) as trusted.
	"safe": func(s string) template.HTML { return template.HTML(s) },
}

// Renderer renders the site's HTML templates. Each template is parsed on
// its own; a file in the override directory replaces the built-in one of
// the same name.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the templates, preferring files in overrideDir.
// overrideDir may be empty or missing.
func NewRenderer(overrideDir string) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(templateNames))}

	for _, name := range templateNames {
		src, err := readTemplate(overrideDir, name)
		if err != nil {
			return nil, err
		}

		tmpl, err := template.New(name).Funcs(funcs).Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

func readTemplate(overrideDir, name string) ([]byte, error) {
	if overrideDir != "" {
		src, err := os.ReadFile(filepath.Join(overrideDir, name))
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}
	}
	return builtinTemplates.ReadFile("templates/" + name)
}

// Render executes the named template with ctx.
func (r *Renderer) Render(name string, ctx Context) (template.HTML, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderPage renders a page template and wraps the result in the base
// template. ctx.Content is set from the page body.
func (r *Renderer) RenderPage(name string, ctx Context) ([]byte, error) {
	body, err := r.Render(name, ctx)
	if err != nil {
		return nil, err
	}

	ctx.Content = body
	page, err := r.Render(BaseTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return []byte(page), nil
}
