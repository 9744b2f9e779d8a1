package check

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// linkAttrs are the attributes holding URLs that must resolve locally.
var linkAttrs = map[string]bool{"href": true, "src": true}

// checkLinks reports local href/src targets in page that do not exist.
func (c *Checker) checkLinks(page string) ([]Issue, error) {
	f, err := os.Open(filepath.Join(c.outputDir, page))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", page, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", page, err)
	}

	var issues []Issue
	seen := make(map[string]bool)
	for _, link := range collectLinks(doc) {
		target, ok := localTarget(link)
		if !ok || seen[target] {
			continue
		}
		seen[target] = true

		if _, err := os.Stat(filepath.Join(c.outputDir, filepath.FromSlash(target))); err != nil {
			issues = append(issues, Issue{
				Type:   IssueBrokenLink,
				ID:     page,
				Path:   link,
				Reason: "target does not exist",
			})
		}
	}
	return issues, nil
}

// collectLinks returns href and src values in document order.
func collectLinks(n *html.Node) []string {
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if linkAttrs[a.Key] {
					links = append(links, strings.TrimSpace(a.Val))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return links
}

// localTarget returns the site-relative path a link points at. External
// URLs (any scheme, or protocol-relative) and fragment-only links are
// not local.
func localTarget(link string) (string, bool) {
	if link == "" || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "//") {
		return "", false
	}

	u, err := url.Parse(link)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}

	target := strings.TrimPrefix(u.Path, "/")
	if target == "" {
		return "", false
	}
	return target, true
}
