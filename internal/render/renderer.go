// Package render converts post records into HTML documents. Markdown
// conversion is done in-process with Goldmark; page chrome comes from embedded
// html/template layouts selected by the post's `layout` metadata.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// ErrUnknownLayout indicates a post declared a layout the renderer does not
// know. Only returned in strict mode; lax mode falls back to DefaultLayout.
var ErrUnknownLayout = errors.New("unknown layout")

// DefaultLayout is used when a post declares no layout or (in lax mode) an
// unrecognized one.
const DefaultLayout = "post"

//go:embed layouts/*.tmpl
var layoutFS embed.FS

// SiteInfo is the site-wide template data shared by every page.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// Options tune renderer behavior.
type Options struct {
	Strict bool // unknown layouts become errors instead of falling back
}

// Renderer converts Markdown bodies to HTML and wraps them in a layout.
// Rendering the same post twice produces byte-identical output.
type Renderer struct {
	md      goldmark.Markdown
	layouts *template.Template
	known   map[string]bool
	site    SiteInfo
	strict  bool
}

// NewRenderer builds a Renderer with the embedded layout set.
func NewRenderer(site SiteInfo, opts Options) (*Renderer, error) {
	layouts, err := template.ParseFS(layoutFS, "layouts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse embedded layouts: %w", err)
	}

	// Post layouts are the bare defined names; file-derived names ("*.tmpl"),
	// partials ("_"-prefixed), and the index template are not selectable.
	known := make(map[string]bool)
	for _, t := range layouts.Templates() {
		name := t.Name()
		if strings.Contains(name, ".") || strings.HasPrefix(name, "_") || name == "index" {
			continue
		}
		known[name] = true
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)

	return &Renderer{
		md:      md,
		layouts: layouts,
		known:   known,
		site:    site,
		strict:  opts.Strict,
	}, nil
}

// KnownLayout reports whether name resolves to an embedded layout.
func (r *Renderer) KnownLayout(name string) bool {
	return r.known[name]
}

// Page is the per-post data handed to layout templates.
type Page struct {
	Site     SiteInfo
	Slug     string
	Title    string
	Subtitle string
	Date     time.Time
	Tags     []string
	Comments bool
	GHRepo   string
	GHBadges []string
	Meta     map[string]any // full open metadata set, unknown keys included
	Sections []template.HTML
}

// Render converts a post's body to HTML and executes its layout. Bodies
// containing an embedded article separator render as independent sections.
func (r *Renderer) Render(p *post.Post) (string, error) {
	layout := p.Layout()
	switch {
	case layout == "":
		layout = DefaultLayout
	case !r.known[layout]:
		if r.strict {
			return "", fmt.Errorf("%w: %q in %s", ErrUnknownLayout, layout, p.SourceName)
		}
		layout = DefaultLayout
	}

	sections, err := r.convertSections(p.Body)
	if err != nil {
		return "", err
	}

	page := Page{
		Site:     r.site,
		Slug:     p.Slug,
		Title:    p.Title(),
		Subtitle: p.Subtitle(),
		Date:     p.Date,
		Tags:     p.Tags(),
		Comments: p.Comments(),
		GHRepo:   p.GHRepo(),
		GHBadges: p.GHBadges(),
		Meta:     p.Meta,
		Sections: sections,
	}

	var buf bytes.Buffer
	if err := r.layouts.ExecuteTemplate(&buf, layout, page); err != nil {
		return "", fmt.Errorf("execute layout %q: %w", layout, err)
	}
	return buf.String(), nil
}

// ConvertMarkdown converts a standalone Markdown fragment to HTML.
func (r *Renderer) ConvertMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	// Goldmark escapes its own output; the fragment is template-safe.
	return template.HTML(buf.String()), nil //nolint:gosec
}

func (r *Renderer) convertSections(body []byte) ([]template.HTML, error) {
	raw := post.Sections(body)
	sections := make([]template.HTML, 0, len(raw))
	for _, section := range raw {
		html, err := r.ConvertMarkdown(section)
		if err != nil {
			return nil, err
		}
		sections = append(sections, html)
	}
	return sections, nil
}

// IndexEntry is one row of the index listing.
type IndexEntry struct {
	Slug     string
	Title    string
	Subtitle string
	Date     time.Time
	Tags     []string
	Excerpt  string
	Href     string
}

// IndexPage is the data handed to the index template.
type IndexPage struct {
	Site    SiteInfo
	Entries []IndexEntry
}

// RenderIndex executes the index layout over the given entries. Entries are
// expected to already be in display order (date descending).
func (r *Renderer) RenderIndex(entries []IndexEntry) (string, error) {
	var buf bytes.Buffer
	if err := r.layouts.ExecuteTemplate(&buf, "index", IndexPage{Site: r.site, Entries: entries}); err != nil {
		return "", fmt.Errorf("execute index layout: %w", err)
	}
	return buf.String(), nil
}
