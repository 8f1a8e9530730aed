package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used for terminal output. Styles come from a
// renderer bound to the output writer, so color is dropped when the output
// is not a terminal.
type palette struct {
	header lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	ok     lipgloss.Style
	bold   lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		header: r.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#928374")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#fabd2f")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("#8ec07c")),
		bold:   r.NewStyle().Bold(true),
	}
}

// section renders an upper-cased title with an underline.
func (p palette) section(title string) string {
	upper := strings.ToUpper(title)
	return fmt.Sprintf("%s\n%s", p.header.Render(upper), p.dim.Render(strings.Repeat("─", lipgloss.Width(upper))))
}

// table renders an aligned table with a header separator line. Columns are
// padded to the widest visible cell.
func (p palette) table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	const colGap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeCells := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				pad := widths[i] - lipgloss.Width(cell)
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeCells(headers, func(s string) string { return p.bold.Render(s) })
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeCells(sep, func(s string) string { return p.dim.Render(s) })
	for _, row := range rows {
		writeCells(row, func(s string) string { return s })
	}
	return b.String()
}
