// Package table provides the result table component for the TUI.
package table

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gifex/internal/core/domain"
)

// Column titles.
const (
	ColumnIndex = "#"
	ColumnID    = "ID (Tenor URL)"
	ColumnSrc   = "SRC (fallback)"
)

const (
	indexWidth   = 5
	minLinkWidth = 10
	noSrc        = "(no src)"
)

// cellPadding is the horizontal padding bubbles adds around each cell.
const cellPadding = 2

// GifTable displays GIF records in a scrollable table.
type GifTable struct {
	table   table.Model
	records []domain.GifRecord
	styles  *styles.Styles
	width   int
	height  int
}

// NewGifTable creates a new GIF table component.
func NewGifTable(s *styles.Styles) *GifTable {
	if s == nil {
		s = styles.DefaultStyles()
	}

	g := &GifTable{
		styles: s,
		width:  80,
		height: 10,
	}
	g.table = table.New(
		table.WithColumns(g.columns()),
		table.WithHeight(g.height),
		table.WithStyles(s.Table()),
	)
	return g
}

// Init initialises the table.
func (g *GifTable) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys when the table is focused.
func (g *GifTable) Update(msg tea.Msg) (*GifTable, tea.Cmd) {
	var cmd tea.Cmd
	g.table, cmd = g.table.Update(msg)
	return g, cmd
}

// View renders the table.
func (g *GifTable) View() string {
	return g.table.View()
}

// SetRecords replaces the rows and moves the cursor to the first one.
func (g *GifTable) SetRecords(records []domain.GifRecord) {
	g.records = records
	rows := make([]table.Row, 0, len(records))
	for i, r := range records {
		src := r.Src
		if src == "" {
			src = noSrc
		}
		rows = append(rows, table.Row{strconv.Itoa(i + 1), r.ID, src})
	}
	g.table.SetRows(rows)
	g.table.SetCursor(0)
}

// Records returns the records shown.
func (g *GifTable) Records() []domain.GifRecord {
	return g.records
}

// Selected returns the highlighted record, or nil if there is none.
func (g *GifTable) Selected() *domain.GifRecord {
	i := g.table.Cursor()
	if i < 0 || i >= len(g.records) {
		return nil
	}
	return &g.records[i]
}

// Cursor returns the index of the highlighted row.
func (g *GifTable) Cursor() int {
	return g.table.Cursor()
}

// MoveUp moves the cursor up one row.
func (g *GifTable) MoveUp() {
	g.table.MoveUp(1)
}

// MoveDown moves the cursor down one row.
func (g *GifTable) MoveDown() {
	g.table.MoveDown(1)
}

// Focus gives the table keyboard focus.
func (g *GifTable) Focus() {
	g.table.Focus()
}

// Blur removes keyboard focus.
func (g *GifTable) Blur() {
	g.table.Blur()
}

// Focused returns whether the table has focus.
func (g *GifTable) Focused() bool {
	return g.table.Focused()
}

// SetDimensions sizes the table and splits the width between the link columns.
func (g *GifTable) SetDimensions(width, height int) {
	g.width = width
	g.height = height
	if height < 3 {
		height = 3
	}
	g.table.SetColumns(g.columns())
	g.table.SetWidth(width)
	g.table.SetHeight(height)
}

func (g *GifTable) columns() []table.Column {
	links := g.width - indexWidth - 3*cellPadding
	idWidth := links / 2
	srcWidth := links - idWidth
	if idWidth < minLinkWidth {
		idWidth = minLinkWidth
	}
	if srcWidth < minLinkWidth {
		srcWidth = minLinkWidth
	}
	return []table.Column{
		{Title: ColumnIndex, Width: indexWidth},
		{Title: ColumnID, Width: idWidth},
		{Title: ColumnSrc, Width: srcWidth},
	}
}

// Width returns the current width.
func (g *GifTable) Width() int {
	return g.width
}

// Height returns the current height.
func (g *GifTable) Height() int {
	return g.height
}

// Count returns the number of rows.
func (g *GifTable) Count() int {
	return len(g.records)
}

// IsEmpty returns whether the table has no rows.
func (g *GifTable) IsEmpty() bool {
	return len(g.records) == 0
}
