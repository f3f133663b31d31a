// Package static renders non-interactive terminal output.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/raphi011/cdh/internal/navigate"
	"github.com/raphi011/cdh/internal/ui/styles"
)

// HistoryHeaders are the column titles of the --list table.
var HistoryHeaders = []string{"ID", "DIRECTORY", "STATUS"}

// HistoryRow formats one listed entry. Stale entries are rendered in the
// warning style.
func HistoryRow(l navigate.Listed) []string {
	id := strconv.Itoa(l.ID)
	if !l.Stale {
		return []string{styles.MutedStyle.Render(id), l.Path, ""}
	}
	return []string{
		styles.WarningStyle.Render(id),
		styles.WarningStyle.Render(l.Path),
		styles.WarningStyle.Render("stale"),
	}
}

// HistoryTable renders the listing, oldest entry first.
func HistoryTable(listed []navigate.Listed) string {
	rows := make([][]string, 0, len(listed))
	for _, l := range listed {
		rows = append(rows, HistoryRow(l))
	}
	return RenderTable(HistoryHeaders, rows)
}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which calculates
// column widths from content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
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
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
