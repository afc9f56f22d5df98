// Package static provides non-interactive terminal output components.
//
// Everything here renders to a string; callers write it to stderr.
package static

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/t/internal/format"
	"github.com/raphi011/t/internal/tempdir"
	"github.com/raphi011/t/internal/ui/styles"
)

// TempdirHeaders returns the status table headers. withSize adds SIZE.
func TempdirHeaders(withSize bool) []string {
	h := []string{"NAME", "KIND", "AGE", "PATH"}
	if withSize {
		h = append(h, "SIZE")
	}
	return h
}

// TempdirTableRow builds one status table row. size is only used when
// withSize is set; negative sizes render as unknown.
func TempdirTableRow(d tempdir.Dir, now time.Time, withSize bool, size int64) []string {
	path := d.Path
	if d.Link != "" && !d.Persistent {
		path = d.Link
	}
	row := []string{d.Name, d.Kind(), format.Age(d.ModTime, now), path}
	if withSize {
		row = append(row, format.Size(size))
	}
	return row
}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
// highlight marks one row (e.g. the current tempdir); pass -1 for none.
func RenderTable(headers []string, rows [][]string, highlight int) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Bold().PaddingRight(2)
			case row == highlight:
				return styles.Accent().PaddingRight(2)
			default:
				return lipgloss.NewStyle().PaddingRight(2)
			}
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
