package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

// renderTable lays rows out in left-aligned columns separated by two spaces.
// Widths count runes so accented names stay aligned.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeRow := func(cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			_, _ = buf.WriteString(cell)
			if i < len(widths)-1 {
				_, _ = buf.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
			}
		}
		_ = buf.WriteByte('\n')
	}

	writeRow(headers)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range rows {
		writeRow(row)
	}
	return buf.String()
}
