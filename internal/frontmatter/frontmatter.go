package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a front matter
// delimiter but did not contain a closing delimiter before end of file.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Fields is the open key/value set parsed from a front matter block.
// Values are normalized to string, bool, or []string; unrecognized keys are
// preserved as-is for downstream consumers.
type Fields map[string]any

// Style captures the newline convention of the source document so delimiter
// matching works for both LF and CRLF files. It does not attempt to preserve
// original YAML formatting.
type Style struct {
	Newline string
}

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a front matter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		// A lone delimiter on the final line without a trailing newline is
		// still an opened block, and nothing closes it.
		if bytes.Equal(content, []byte("---")) || bytes.Equal(content, []byte("---\r")) {
			return nil, nil, false, style, ErrMissingClosingDelimiter
		}
		return nil, content, false, style, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the very last line without a trailing newline
		// still terminates the block.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content, tail) {
			end := len(content) - len(tail)
			return content[frontmatterStart : end+len(nl)], nil, true, style, nil
		}
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	frontmatterEnd := frontmatterStart + idx + len(nl)
	bodyStart := frontmatterStart + idx + len(closeSeq)
	return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, style, nil
}

// Parse splits a document and decodes its front matter into normalized Fields.
// The returned body has leading blank lines trimmed.
//
// A document without a leading delimiter yields empty Fields and the body
// unchanged.
func Parse(content []byte) (Fields, []byte, error) {
	raw, body, had, _, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	if !had {
		return Fields{}, body, nil
	}

	fields, err := ParseYAML(raw)
	if err != nil {
		return nil, nil, err
	}
	return fields, trimLeadingBlankLines(body), nil
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into Fields.
func ParseYAML(raw []byte) (Fields, error) {
	if len(raw) == 0 {
		return Fields{}, nil
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)
	}

	fields := make(Fields, len(decoded))
	for k, v := range decoded {
		fields[k] = normalizeValue(v)
	}
	return fields, nil
}

// ErrMalformedFrontMatter wraps YAML decode failures inside a detected block.
var ErrMalformedFrontMatter = errors.New("malformed front matter block")

// normalizeValue collapses the YAML value space to string | bool | []string.
// Sequences keep their declared order; scalar members are stringified.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return val
	case string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return fmt.Sprintf("%v", val)
	}
}

func trimLeadingBlankLines(body []byte) []byte {
	for len(body) > 0 {
		nl := bytes.IndexByte(body, '\n')
		if nl < 0 {
			if len(bytes.TrimSpace(body)) == 0 {
				return []byte{}
			}
			return body
		}
		if len(bytes.TrimSpace(body[:nl])) != 0 {
			return body
		}
		body = body[nl+1:]
	}
	return body
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}
	return Style{Newline: newline}
}
