package extract

import (
	"strings"
	"unicode"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

const documentEnd = "</DOCUMENT>"

// DocumentReader turns a complete submission file into plain prose
type DocumentReader struct {
	converter *converter.Converter
}

// NewDocumentReader creates a reader with the markdown converter configured
func NewDocumentReader() *DocumentReader {
	return &DocumentReader{
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Text keeps only the first document of the submission (the report
// itself, not its exhibits) and converts its markup to text.
func (r *DocumentReader) Text(raw string) string {
	if idx := strings.Index(raw, documentEnd); idx >= 0 {
		raw = raw[:idx+len(documentEnd)]
	}

	text, err := r.converter.ConvertString(raw)
	if err == nil && strings.TrimSpace(text) != "" {
		return normalizeSpaces(text)
	}

	// Markdown conversion gave up; fall back to the visible text nodes
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return normalizeSpaces(raw)
	}
	return normalizeSpaces(extractVisibleText(doc))
}

// normalizeSpaces turns &nbsp; and the other Unicode space separators into
// plain spaces so the ASCII patterns downstream see them
func normalizeSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, text)
}

// Sentences converts a submission and segments it
func (r *DocumentReader) Sentences(raw string) []string {
	return Segment(r.Text(raw))
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
