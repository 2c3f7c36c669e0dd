package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_Frontmatter_SplitsBlockAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\ntitle: Hello\n# Title\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_LoneOpeningDelimiter_ReturnsError(t *testing.T) {
	for _, input := range [][]byte{
		[]byte("---"),
		[]byte("---\r"),
		[]byte("---\n"),
	} {
		_, _, had, _, err := Split(input)
		require.Error(t, err, "input %q", input)
		require.False(t, had)
		require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
	}

	_, _, err := Parse([]byte("---"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplit_CRLF_SplitsBlockAndBody(t *testing.T) {
	input := []byte("---\r\ntitle: Hello\r\n---\r\n# Title\r\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse_NoDelimiter_EmptyFieldsBodyUnchanged(t *testing.T) {
	input := []byte("just prose, no metadata\n")

	fields, body, err := Parse(input)
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, input, body)
}

func TestParse_ListValue_OrderedStringSequence(t *testing.T) {
	input := []byte("---\ngh-badge: [star, fork, follow]\n---\nbody\n")

	fields, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, []string{"star", "fork", "follow"}, fields["gh-badge"])
	require.Len(t, fields["gh-badge"], 3)
}

func TestParse_BooleanValue_IsBoolNotString(t *testing.T) {
	input := []byte("---\ncomments: false\n---\nbody\n")

	fields, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, false, fields["comments"])
	require.IsType(t, false, fields["comments"])
}

func TestParse_FreeTextValue_StaysString(t *testing.T) {
	input := []byte("---\nsubtitle: Rendering tips for large lists\n---\nbody\n")

	fields, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "Rendering tips for large lists", fields["subtitle"])
}

func TestParse_UnknownKeysPreserved(t *testing.T) {
	input := []byte("---\nlayout: post\nx-custom-flag: keep-me\n---\nbody\n")

	fields, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "keep-me", fields["x-custom-flag"])
}

func TestParse_TrimsLeadingBlankLines(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n\n\n# Heading\n")

	_, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, []byte("# Heading\n"), body)
}

func TestParse_NumericScalar_CoercedToString(t *testing.T) {
	input := []byte("---\nrevision: 3\n---\nbody\n")

	fields, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "3", fields["revision"])
}

func TestParseSerialize_RoundTripsKeyValueSet(t *testing.T) {
	input := []byte("---\nlayout: post\ntitle: \"React 16 vs React 15\"\ntags: [react, performance]\ncomments: true\n---\nbody\n")

	fields, _, err := Parse(input)
	require.NoError(t, err)

	again, err := ParseYAML(Serialize(fields))
	require.NoError(t, err)
	require.Equal(t, fields, again)
}

func TestSerialize_Deterministic(t *testing.T) {
	fields := Fields{
		"title":    "Hello",
		"tags":     []string{"a", "b"},
		"comments": true,
	}
	require.Equal(t, Serialize(fields), Serialize(fields))
	require.Equal(t,
		"comments: true\ntags: [a, b]\ntitle: Hello\n",
		string(Serialize(fields)))
}

func TestDocument_EmptyFields_BodyUnchanged(t *testing.T) {
	body := []byte("# plain\n")
	require.Equal(t, body, Document(Fields{}, body))
}
