package site

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

const excerptMaxRunes = 200

// Excerpt extracts the text of the first paragraph from a rendered HTML
// document, truncated on a word boundary. An empty string means no paragraph
// was found; the index entry simply omits the excerpt then.
func Excerpt(rendered string) string {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return ""
	}

	var paragraph *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if paragraph != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(textContent(n)); text != "" {
				paragraph = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	if paragraph == nil {
		return ""
	}
	return truncateWords(collapseWhitespace(textContent(paragraph)), excerptMaxRunes)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateWords(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	cut := maxRunes
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = maxRunes
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
