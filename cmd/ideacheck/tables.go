package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	// defaultTableConfig wraps long ideas instead of stretching the terminal.
	defaultTableConfig = tablewriter.Config{
		Row: tw.CellConfig{
			Formatting: tw.CellFormatting{
				AutoWrap: tw.WrapNormal,
			},
			ColMaxWidths: tw.CellWidth{Global: 48},
		},
	}

	defaultTableLinesTint = renderer.Tint{
		BG: renderer.Colors{color.Reset},
		FG: renderer.Colors{color.Reset},
	}
)

// newTable returns a table on w, colourised unless colour output is off.
func newTable(w io.Writer) *tablewriter.Table {
	if color.NoColor {
		return tablewriter.NewTable(w, tablewriter.WithConfig(defaultTableConfig))
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(defaultTableConfig),
		tablewriter.WithRenderer(renderer.NewColorized(renderer.ColorizedConfig{
			Header: renderer.Tint{
				FG: renderer.Colors{color.Bold},
			},
			Column: renderer.Tint{
				Columns: []renderer.Tint{
					{FG: renderer.Colors{color.Bold, color.FgCyan}},
				},
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.On,
					BetweenRows:    tw.On,
				},
			},
			Symbols:   tw.NewSymbols(tw.StyleRounded),
			Border:    defaultTableLinesTint,
			Separator: defaultTableLinesTint,
		})),
	)
}
