package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cjwong/sitegen/internal/config"
	"github.com/cjwong/sitegen/internal/publication"
)

func testSite() *config.Site {
	return &config.Site{
		Title:       "Cara Wong",
		Description: "Political scientist",
		Author:      "Cara Wong",
		Email:       "cara@example.edu",
		Nav: []config.NavLink{
			{Label: "Home", URL: "index.html"},
			{Label: "Publications", URL: "published.html"},
		},
	}
}

func TestRenderer_Builtin(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	page, err := r.RenderPage(PageTemplate, Context{
		Site:       testSite(),
		BuildYear:  2026,
		Title:      "Data & Code",
		Kicker:     "Materials",
		Intro:      "Replication materials.",
		BodyClass:  "page",
		CurrentURL: "published.html",
		Body:       "<p>Body text</p>",
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	html := string(page)
	for _, want := range []string{
		"<title>Data &amp; Code | Cara Wong</title>",
		`<meta name="description" content="Political scientist">`,
		`<body class="page">`,
		`<p class="kicker">Materials</p>`,
		"<h1>Data &amp; Code</h1>",
		`<p class="intro">Replication materials.</p>`,
		"<p>Body text</p>",
		`<a href="published.html" class="active" aria-current="page">Publications</a>`,
		`<a href="index.html">Home</a>`,
		"&copy; 2026 Cara Wong",
		`<a href="mailto:cara@example.edu">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q\n%s", want, html)
		}
	}
}

func TestRenderer_HomeTitle(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	page, err := r.RenderPage(IndexTemplate, Context{
		Site:      testSite(),
		Title:     "Cara Wong",
		BodyClass: "home",
		Body:      "<p>Welcome</p>",
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if !strings.Contains(string(page), "<title>Cara Wong</title>") {
		t.Errorf("home page title should not repeat the site title:\n%s", page)
	}
}

func TestRenderer_Publications(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	list := publication.List{Sections: []publication.Section{{
		Title: publication.SectionArticles,
		Items: []publication.Item{{
			ID:      "wong2012jop",
			Authors: "<strong>Cara Wong</strong>, Jake Bowers",
			Year:    "2012",
			Title:   "Bringing the Person Back In",
			Venue:   "The Journal of Politics 74(2): 368-383",
			Links:   []publication.Link{{Label: publication.LabelDOI, URL: "https://doi.org/10.1/x"}},
			Note:    "Lead article",
		}},
	}}}

	html, err := r.Render(PublicationsTemplate, Context{Title: "Publications", Publications: list})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"<h2>Journal Articles</h2>",
		`<li class="publication" id="wong2012jop">`,
		"<strong>Cara Wong</strong>, Jake Bowers",
		`<span class="year">(2012)</span>`,
		"Bringing the Person Back In",
		"368-383",
		`<span class="note">Lead article</span>`,
		`<a href="https://doi.org/10.1/x">DOI</a>`,
	} {
		if !strings.Contains(string(html), want) {
			t.Errorf("publications missing %q\n%s", want, html)
		}
	}
}

func TestRenderer_PublicationsEmpty(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	html, err := r.Render(PublicationsTemplate, Context{Title: "Publications"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(html), "No publications listed.") {
		t.Errorf("empty list should render a placeholder:\n%s", html)
	}
}

func TestRenderer_Override(t *testing.T) {
	dir := t.TempDir()
	override := `<section class="custom">{{.Body}}</section>`
	if err := os.WriteFile(filepath.Join(dir, IndexTemplate), []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRenderer(dir)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	html, err := r.Render(IndexTemplate, Context{Body: "<p>hi</p>"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(html) != `<section class="custom"><p>hi</p></section>` {
		t.Errorf("Render() = %q, want override output", html)
	}

	// Templates without an override fall back to the built-in ones.
	page, err := r.Render(PageTemplate, Context{Title: "T"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(page), `<article class="page">`) {
		t.Errorf("page template should be built-in, got %q", page)
	}
}

func TestRenderer_BadOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, BaseTemplate), []byte("{{.Title"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRenderer(dir); err == nil {
		t.Fatal("NewRenderer() with a malformed override should fail")
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if _, err := r.Render("missing.html", Context{}); err == nil {
		t.Fatal("Render() of unknown template should fail")
	}
}

func TestFuncs_UsedByBuiltinTemplates(t *testing.T) {
	var all strings.Builder
	entries, err := builtinTemplates.ReadDir("templates")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		data, err := builtinTemplates.ReadFile("templates/" + e.Name())
		if err != nil {
			t.Fatal(err)
		}
		all.Write(data)
	}

	for name := range funcs {
		if !strings.Contains(all.String(), name+" ") && !strings.Contains(all.String(), "| "+name) {
			t.Errorf("template func %q is not used by any built-in template", name)
		}
	}
}
