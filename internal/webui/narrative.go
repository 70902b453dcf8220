package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed narrative/*.md
var narrativeFS embed.FS

// Narrative holds the static explanatory sections of the page, already
// converted to HTML.
type Narrative struct {
	Introduction template.HTML
	Approaches   template.HTML
	RF2          template.HTML
	Methodology  template.HTML
}

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func markdownConverter() goldmark.Markdown {
	markdownOnce.Do(func() {
		// Raw HTML in the sources is dropped, which keeps the output safe to
		// mark as template.HTML.
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdown
}

func renderMarkdown(name string) (template.HTML, error) {
	src, err := narrativeFS.ReadFile("narrative/" + name)
	if err != nil {
		return "", fmt.Errorf("reading narrative %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := markdownConverter().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting narrative %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// LoadNarrative converts the embedded markdown sections.
func LoadNarrative() (Narrative, error) {
	var n Narrative
	sections := []struct {
		file string
		dst  *template.HTML
	}{
		{"introduction.md", &n.Introduction},
		{"approaches.md", &n.Approaches},
		{"rf2.md", &n.RF2},
		{"methodology.md", &n.Methodology},
	}
	for _, s := range sections {
		html, err := renderMarkdown(s.file)
		if err != nil {
			return Narrative{}, err
		}
		*s.dst = html
	}
	return n, nil
}
