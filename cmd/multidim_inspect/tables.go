// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	filledCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"}).
			Italic(true).
			PaddingLeft(1).PaddingRight(1)
)

func newPlainTable(withHeader bool, alignments ...lipgloss.Position) *lgtable.Table {
	t := newTableWithFills(withHeader, alignments...)
	return t.Table
}

// TableWithFills is a table where some cells are marked as filled with the default value
// of a boxed view, and rendered with a different style.
type TableWithFills struct {
	Table  *lgtable.Table
	Count  int
	Filled map[[2]int]bool
}

// Row appends a row to the table. filled has the column indices of the filled cells.
func (t *TableWithFills) Row(filled []int, row ...string) {
	for _, col := range filled {
		t.Filled[[2]int{t.Count, col}] = true
	}
	t.Table.Row(row...)
	t.Count++
}

func newTableWithFills(withHeader bool, alignments ...lipgloss.Position) *TableWithFills {
	t := &TableWithFills{
		Filled: make(map[[2]int]bool),
	}
	t.Table = lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row < 0 {
				s = headerRowStyle
				return
			}
			if t.Filled[[2]int{row, col}] {
				s = filledCellStyle
			} else {
				switch {
				case row%2 == 0:
					// Even row style.
					s = oddRowStyle
				default:
					// Odd row style
					s = evenRowStyle
				}
			}
			alignment := lipgloss.Left
			if col < len(alignments) {
				alignment = alignments[col]
			} else if len(alignments) > 0 {
				alignment = alignments[len(alignments)-1]
			}
			s = s.Align(alignment)
			return
		})
	return t
}
