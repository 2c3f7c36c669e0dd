// Package post defines the in-memory representation of one parsed blog post
// and the filename conventions posts must follow.
package post

import (
	"bytes"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// SectionSeparator marks the boundary between two originally distinct articles
// that were concatenated into a single source file. The collector flags it as a
// data-cleanliness warning; the renderer emits each side as its own section.
const SectionSeparator = "---===---"

// Post is one parsed content file: filename-derived identity, front matter
// metadata, and the raw Markdown body. A Post is created once at collection
// time and is immutable afterwards.
type Post struct {
	Slug       string             // unique, URL-safe, derived from filename
	Date       time.Time          // parsed from the YYYY-MM-DD filename prefix
	Meta       frontmatter.Fields // open key set, unknown keys pass through
	Body       []byte             // Markdown body, front matter removed
	SourcePath string             // absolute path of the source file
	SourceName string             // base filename, for problem reporting
}

// Title returns the front matter title, the first H1 heading, or a humanized
// form of the slug, in that order.
func (p *Post) Title() string {
	if t, ok := p.Meta["title"].(string); ok && t != "" {
		return t
	}
	for _, line := range strings.Split(string(p.Body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return humanize(p.Slug)
}

// Subtitle returns the front matter subtitle, if any.
func (p *Post) Subtitle() string {
	s, _ := p.Meta["subtitle"].(string)
	return s
}

// Layout returns the declared layout name, empty when absent.
func (p *Post) Layout() string {
	l, _ := p.Meta["layout"].(string)
	return l
}

// Tags returns the ordered tag list from front matter.
func (p *Post) Tags() []string {
	t, _ := p.Meta["tags"].([]string)
	return t
}

// Comments reports whether the external comment widget should be embedded.
// The widget itself is an external collaborator; only the flag is threaded
// through to templates.
func (p *Post) Comments() bool {
	c, _ := p.Meta["comments"].(bool)
	return c
}

// GHRepo returns the external repository reference, passed through untouched.
func (p *Post) GHRepo() string {
	r, _ := p.Meta["gh-repo"].(string)
	return r
}

// GHBadges returns the ordered badge list from front matter.
func (p *Post) GHBadges() []string {
	b, _ := p.Meta["gh-badge"].([]string)
	return b
}

// HasEmbeddedSeparator reports whether the body contains a section separator
// line, i.e. two articles joined into one file.
func (p *Post) HasEmbeddedSeparator() bool {
	return len(Sections(p.Body)) > 1
}

// Sections splits a body on separator lines. A body without separators yields
// a single section. Empty sides of a separator are dropped.
func Sections(body []byte) [][]byte {
	lines := bytes.Split(body, []byte("\n"))
	var sections [][]byte
	var current [][]byte

	flush := func() {
		joined := bytes.TrimSpace(bytes.Join(current, []byte("\n")))
		if len(joined) > 0 {
			sections = append(sections, joined)
		}
		current = current[:0]
	}

	for _, line := range lines {
		if string(bytes.TrimSpace(line)) == SectionSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	if sections == nil {
		sections = [][]byte{{}}
	}
	return sections
}

func humanize(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
