package ui

import (
	"fmt"
	"io"
	"strings"

	"atlasui/internal/api"
	"atlasui/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EmptyPlaceholder is shown in place of rows when there are none.
const EmptyPlaceholder = "No items found"

// ActionsHeader labels the trailing action column.
const ActionsHeader = "Actions"

// maxCellWidth caps a column so one long comment cannot push the rest off screen.
const maxCellWidth = 28

// SpecialAction is the per-row action next to Delete ("View", "Edit", ...).
type SpecialAction struct {
	Label    string
	OnSelect func(row api.Row) tea.Msg
}

// TableView renders rows under the given columns with optional row actions.
// Enter fires Special on the cursor row; d fires OnDelete.
type TableView struct {
	Title    string
	Columns  []api.Column
	Rows     []api.Row
	OnDelete func(row api.Row, index int) tea.Msg
	Special  *SpecialAction

	table  table.Model
	height int
}

// Ensure TableView implements View.
var _ View = (*TableView)(nil)

// NewTableView creates a focused table. Rows are set with SetRows.
func NewTableView(title string, columns []api.Column) *TableView {
	t := table.New(table.WithFocused(true))
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		BorderBottom(true).
		Bold(true)
	st.Selected = Styles.Selected
	t.SetStyles(st)

	v := &TableView{
		Title:   title,
		Columns: columns,
		table:   t,
		height:  20,
	}
	v.refresh()
	return v
}

// WithDelete sets the delete callback.
func (v *TableView) WithDelete(fn func(row api.Row, index int) tea.Msg) *TableView {
	v.OnDelete = fn
	v.refresh()
	return v
}

// WithSpecial sets the special action.
func (v *TableView) WithSpecial(a SpecialAction) *TableView {
	v.Special = &a
	v.refresh()
	return v
}

// SetRows replaces the rows and keeps the cursor in range.
func (v *TableView) SetRows(rows []api.Row) {
	v.Rows = rows
	v.refresh()
}

// Clear drops all rows. The next SetRows starts on the first row.
func (v *TableView) Clear() {
	v.Rows = nil
	v.refresh()
}

// Cursor returns the index of the highlighted row.
func (v *TableView) Cursor() int {
	return v.table.Cursor()
}

// SelectedRow returns the highlighted row, or false if there are no rows.
func (v *TableView) SelectedRow() (api.Row, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.Rows) {
		return nil, false
	}
	return v.Rows[i], true
}

func (v *TableView) hasActions() bool {
	return v.Special != nil || v.OnDelete != nil
}

// actionCell renders the buttons shown for every row.
func (v *TableView) actionCell() string {
	var parts []string
	if v.Special != nil {
		parts = append(parts, "["+v.Special.Label+"]")
	}
	if v.OnDelete != nil {
		parts = append(parts, "[Delete]")
	}
	return strings.Join(parts, " ")
}

// refresh rebuilds bubbles/table columns and rows from props.
func (v *TableView) refresh() {
	cells := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		cells[i] = rowCells(r, v.Columns)
	}

	cols := make([]table.Column, 0, len(v.Columns)+1)
	for ci, c := range v.Columns {
		w := textutil.VisualWidth(c.Label)
		for _, row := range cells {
			w = max(w, textutil.VisualWidth(row[ci]))
		}
		cols = append(cols, table.Column{Title: c.Label, Width: min(w, maxCellWidth)})
	}

	if v.hasActions() {
		action := v.actionCell()
		cols = append(cols, table.Column{
			Title: ActionsHeader,
			Width: max(textutil.VisualWidth(ActionsHeader), textutil.VisualWidth(action)),
		})
		for i := range cells {
			cells[i] = append(cells[i], action)
		}
	}

	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}

	// Rows must be cleared before columns shrink, or bubbles/table indexes
	// past the end of the new column set. Clearing drops the cursor to -1.
	cursor := v.table.Cursor()
	v.table.SetRows(nil)
	v.table.SetColumns(cols)
	v.table.SetRows(rows)
	if len(rows) > 0 {
		v.table.SetCursor(min(max(cursor, 0), len(rows)-1))
	}
	v.table.SetHeight(v.height)
}

func rowCells(r api.Row, columns []api.Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = textutil.SingleLine(r.Cell(c.Key))
	}
	return out
}

// Init implements View.
func (v *TableView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *TableView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Title, blank line, and the app's footer.
		v.height = max(msg.Height-6, 3)
		v.table.SetHeight(v.height)
		v.table.SetWidth(msg.Width)
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			row, ok := v.SelectedRow()
			if !ok || v.Special == nil || v.Special.OnSelect == nil {
				return v, nil
			}
			return v, func() tea.Msg { return v.Special.OnSelect(row) }
		case "d", "delete":
			row, ok := v.SelectedRow()
			if !ok || v.OnDelete == nil {
				return v, nil
			}
			idx := v.table.Cursor()
			return v, func() tea.Msg { return v.OnDelete(row, idx) }
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View implements View.
func (v *TableView) View() string {
	var b strings.Builder
	if v.Title != "" {
		b.WriteString(Styles.Title.Render(v.Title) + "\n\n")
	}
	b.WriteString(v.table.View())
	if len(v.Rows) == 0 {
		b.WriteString("\n" + Styles.Empty.Render(EmptyPlaceholder))
	}
	return b.String()
}

// RenderPlain writes the table as aligned plain text, for non-interactive output.
func RenderPlain(w io.Writer, title string, columns []api.Column, rows []api.Row) error {
	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = textutil.VisualWidth(c.Label)
	}
	for ri, r := range rows {
		cells[ri] = rowCells(r, columns)
		for ci, s := range cells[ri] {
			widths[ci] = min(max(widths[ci], textutil.VisualWidth(s)), maxCellWidth)
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n\n")
	}
	writeLine := func(values []string) {
		parts := make([]string, len(values))
		for i, s := range values {
			parts[i] = textutil.PadRightVisual(s, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}

	labels := make([]string, len(columns))
	rule := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = c.Label
		rule[i] = strings.Repeat("-", widths[i])
	}
	writeLine(labels)
	writeLine(rule)
	if len(rows) == 0 {
		b.WriteString(EmptyPlaceholder + "\n")
	}
	for _, c := range cells {
		writeLine(c)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
