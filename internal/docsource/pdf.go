package docsource

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal gap, as a share of the font size, that separates
// two text runs with a space.
const wordGap = 0.15

// readPDF rebuilds the page text row by row so table rows stay on one line.
func readPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("error reading PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("error extracting text from page %d: %w", i, err)
		}
		for _, row := range rows {
			b.WriteString(joinRow(row.Content))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// joinRow concatenates the text runs of one row, inserting spaces at gaps.
func joinRow(runs pdf.TextHorizontal) string {
	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			if t.X-(prev.X+prev.W) > prev.FontSize*wordGap && !strings.HasSuffix(prev.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return strings.TrimSpace(b.String())
}
