package docsource

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// blockTags start a new line of text.
var blockTags = map[string]bool{
	"p": true, "div": true, "tr": true, "li": true, "br": true, "table": true,
	"section": true, "article": true, "header": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// cellTags end with a space so table cells do not run together.
var cellTags = map[string]bool{"td": true, "th": true}

// readHTML flattens an HTML report to text with one line per block or table row.
func readHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	writeNode(doc.Find("body"), &b)
	if b.Len() == 0 {
		writeNode(doc.Selection, &b)
	}
	return tidyLines(b.String()), nil
}

func writeNode(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch {
		case name == "#text":
			raw := s.Text()
			if raw != strings.TrimLeftFunc(raw, unicode.IsSpace) {
				b.WriteByte(' ')
			}
			b.WriteString(strings.Join(strings.Fields(raw), " "))
			if raw != strings.TrimRightFunc(raw, unicode.IsSpace) {
				b.WriteByte(' ')
			}
		case blockTags[name]:
			b.WriteByte('\n')
			writeNode(s, b)
			b.WriteByte('\n')
		case cellTags[name]:
			writeNode(s, b)
			b.WriteByte(' ')
		default:
			writeNode(s, b)
		}
	})
}

// tidyLines trims every line and drops the empty ones.
func tidyLines(s string) string {
	var out []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
