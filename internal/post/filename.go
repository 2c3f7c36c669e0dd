package post

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidFilename indicates a filename that matches the dated post shape but
// carries an invalid calendar date or an empty slug.
var ErrInvalidFilename = errors.New("invalid post filename")

// datedName matches the `YYYY-MM-DD-<slug>.<ext>` shape. Extension validity is
// checked separately so that `2023-05-09-notes.txt` is ignored, not an error.
var datedName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.([A-Za-z]+)$`)

const dateLayout = "2006-01-02"

// IsPostFilename reports whether name has the dated-post shape with a Markdown
// extension. Files for which this returns false are ignored by the collector.
func IsPostFilename(name string) bool {
	m := datedName.FindStringSubmatch(name)
	return m != nil && isMarkdownExt("."+m[3])
}

// ParseFilename extracts the publication date and slug from a post filename.
// The date must be calendar-valid and the slug non-empty, otherwise
// ErrInvalidFilename is returned.
func ParseFilename(name string) (time.Time, string, error) {
	m := datedName.FindStringSubmatch(name)
	if m == nil || !isMarkdownExt("."+m[3]) {
		return time.Time{}, "", fmt.Errorf("%w: %s does not match YYYY-MM-DD-slug pattern", ErrInvalidFilename, name)
	}

	date, err := time.Parse(dateLayout, m[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %s: %w", ErrInvalidFilename, name, err)
	}

	slug := Slugify(m[2])
	if slug == "" {
		return time.Time{}, "", fmt.Errorf("%w: %s yields an empty slug", ErrInvalidFilename, name)
	}

	return date, slug, nil
}

func isMarkdownExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}

// OutputName returns the rendered document filename for a slug.
func OutputName(slug string) string {
	return slug + ".html"
}
