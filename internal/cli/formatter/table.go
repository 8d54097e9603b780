package formatter

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Column describes one table column. MaxWidth 0 means unbounded; longer cells
// wrap inside the column.
type Column struct {
	Header   string
	MaxWidth int
	Right    bool
}

// RenderTable renders rows under a rounded box. Missing cells render empty.
func RenderTable(columns []Column, rows [][]string) string {
	n := len(columns)
	if n == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, n)
	for i, c := range columns {
		header[i] = c.Header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, n)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, n)
	for i, c := range columns {
		align := text.AlignLeft
		if c.Right {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    c.MaxWidth,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
