package frontmatter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize emits Fields as a deterministic front matter block body (without
// the --- delimiters). Keys are sorted so that parse → serialize → parse
// round-trips the key/value set regardless of map iteration order.
func Serialize(fields Fields) []byte {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(": ")
		writeValue(&buf, fields[k])
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Document reassembles a full file from Fields and a body, using `---`
// delimiters. Empty Fields produce the body unchanged.
func Document(fields Fields, body []byte) []byte {
	if len(fields) == 0 {
		return body
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(Serialize(fields))
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes()
}

func writeValue(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case []string:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(quoteIfNeeded(item))
		}
		buf.WriteByte(']')
	case string:
		buf.WriteString(quoteIfNeeded(val))
	default:
		// normalizeValue keeps the value space closed to string|bool|[]string;
		// stringify anything else as a last resort.
		buf.WriteString(quoteIfNeeded(fmt.Sprintf("%v", val)))
	}
}

// quoteIfNeeded wraps values that YAML would otherwise reinterpret (booleans,
// flow indicators, leading/trailing whitespace) in double quotes.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	lower := strings.ToLower(s)
	needsQuote := lower == "true" || lower == "false" || lower == "null" ||
		strings.ContainsAny(s, ":#[]{}&*!|>'\"%@`,") ||
		s != strings.TrimSpace(s)
	if !needsQuote {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			needsQuote = true
		}
	}
	if needsQuote {
		return strconv.Quote(s)
	}
	return s
}
