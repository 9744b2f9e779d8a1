package publication

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDOIURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"http://doi.org/10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"https://doi.org/10.1000/xyz", "https://doi.org/10.1000/xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DOIURL(tt.in); got != tt.want {
				t.Errorf("DOIURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollectLinks(t *testing.T) {
	b, err := NewBuilder(Options{Documents: map[string]string{
		"wong2012jop": "Papers/wong2012jop.pdf",
	}})
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	tests := []struct {
		name   string
		id     string
		fields map[string]string
		want   []Link
	}{
		{
			name: "no links",
			id:   "x",
			want: []Link{},
		},
		{
			name: "priority order",
			id:   "wong2012jop",
			fields: map[string]string{
				"doi":        "10.1017/s0022381611001587",
				"bdsk-url-1": "https://example.org/one",
				"bdsk-url-2": "https://example.org/two",
				"url":        "https://example.org/main",
			},
			want: []Link{
				{LabelPDF, "Papers/wong2012jop.pdf"},
				{LabelDOI, "https://doi.org/10.1017/s0022381611001587"},
				{LabelLink, "https://example.org/one"},
				{LabelLink, "https://example.org/two"},
				{LabelLink, "https://example.org/main"},
			},
		},
		{
			name: "bdsk doi links skipped",
			id:   "x",
			fields: map[string]string{
				"doi":        "10.1/abc",
				"bdsk-url-1": "https://doi.org/10.1/abc",
				"bdsk-url-2": "http://dx.doi.org/10.1/abc",
			},
			want: []Link{{LabelDOI, "https://doi.org/10.1/abc"}},
		},
		{
			name: "url equal to bdsk url appears once",
			id:   "x",
			fields: map[string]string{
				"bdsk-url-1": "https://example.org/same",
				"url":        "https://example.org/same",
			},
			want: []Link{{LabelLink, "https://example.org/same"}},
		},
		{
			name: "repeated bdsk urls deduplicated",
			id:   "x",
			fields: map[string]string{
				"bdsk-url-1": "https://example.org/a",
				"bdsk-url-3": "https://example.org/a",
				"bdsk-url-4": "https://example.org/b",
			},
			want: []Link{{LabelLink, "https://example.org/a"}, {LabelLink, "https://example.org/b"}},
		},
		{
			name:   "url field that is a doi url duplicates DOI and is dropped",
			id:     "x",
			fields: map[string]string{"doi": "https://doi.org/10.2/z", "url": "https://doi.org/10.2/z"},
			want:   []Link{{LabelDOI, "https://doi.org/10.2/z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.CollectLinks(entry(tt.id, "article", tt.fields))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CollectLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewBuilder_CopiesDocuments(t *testing.T) {
	docs := map[string]string{"a": "a.pdf"}
	b, err := NewBuilder(Options{Documents: docs})
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	docs["a"] = "changed.pdf"

	links := b.CollectLinks(entry("a", "book", nil))
	if len(links) != 1 || links[0].URL != "a.pdf" {
		t.Errorf("CollectLinks() = %v, want the document path captured at construction", links)
	}
}
