package post

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

func TestParseFilename_ValidDateAndSlug(t *testing.T) {
	date, slug, err := ParseFilename("2023-05-09-react16-vs-react15.md")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 5, 9, 0, 0, 0, 0, time.UTC), date)
	require.Equal(t, "react16-vs-react15", slug)
}

func TestParseFilename_InvalidCalendarDate(t *testing.T) {
	_, _, err := ParseFilename("2023-02-30-impossible.md")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidFilename))
}

func TestParseFilename_NonMatchingShape(t *testing.T) {
	_, _, err := ParseFilename("notes.md")
	require.True(t, errors.Is(err, ErrInvalidFilename))
}

func TestIsPostFilename(t *testing.T) {
	require.True(t, IsPostFilename("2022-02-28-optimize-lists.md"))
	require.True(t, IsPostFilename("2022-02-28-optimize-lists.markdown"))
	require.False(t, IsPostFilename("2022-02-28-notes.txt"))
	require.False(t, IsPostFilename("README.md"))
	require.False(t, IsPostFilename("draft-optimize-lists.md"))
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "hello-world", Slugify("Hello World"))
	require.Equal(t, "cafe-au-lait", Slugify("Café au Lait"))
	require.Equal(t, "react16-vs-react15", Slugify("react16-vs-react15"))
	require.Equal(t, "a-b", Slugify("--a__b--"))
	require.Equal(t, "", Slugify("!!!"))
}

func TestPost_MetadataAccessors(t *testing.T) {
	p := &Post{
		Slug: "react16-vs-react15",
		Meta: frontmatter.Fields{
			"title":    "React 16 vs React 15",
			"subtitle": "What actually changed",
			"layout":   "post",
			"tags":     []string{"react", "performance"},
			"comments": false,
			"gh-repo":  "facebook/react",
			"gh-badge": []string{"star", "fork", "follow"},
		},
	}

	require.Equal(t, "React 16 vs React 15", p.Title())
	require.Equal(t, "What actually changed", p.Subtitle())
	require.Equal(t, "post", p.Layout())
	require.Equal(t, []string{"react", "performance"}, p.Tags())
	require.False(t, p.Comments())
	require.Equal(t, "facebook/react", p.GHRepo())
	require.Equal(t, []string{"star", "fork", "follow"}, p.GHBadges())
}

func TestPost_TitleFallsBackToHeadingThenSlug(t *testing.T) {
	withHeading := &Post{
		Slug: "untitled",
		Meta: frontmatter.Fields{},
		Body: []byte("intro\n\n# Heading Title\n\nmore\n"),
	}
	require.Equal(t, "Heading Title", withHeading.Title())

	bare := &Post{Slug: "optimize-long-lists", Meta: frontmatter.Fields{}}
	require.Equal(t, "Optimize Long Lists", bare.Title())
}

func TestSections_NoSeparator_SingleSection(t *testing.T) {
	sections := Sections([]byte("# One\n\nbody\n"))
	require.Len(t, sections, 1)
}

func TestSections_SeparatorSplitsIndependentSections(t *testing.T) {
	body := []byte("# First article\n\ntext\n\n---===---\n\n# Second article\n\nmore\n")
	sections := Sections(body)
	require.Len(t, sections, 2)
	require.Contains(t, string(sections[0]), "First article")
	require.Contains(t, string(sections[1]), "Second article")
}

func TestHasEmbeddedSeparator(t *testing.T) {
	joined := &Post{Body: []byte("a\n---===---\nb\n")}
	require.True(t, joined.HasEmbeddedSeparator())

	plain := &Post{Body: []byte("a\n---\nb\n")}
	require.False(t, plain.HasEmbeddedSeparator())
}
