package ui

import (
	"fmt"
	"strings"

	"odatatable/internal/model"
	"odatatable/internal/util"

	"github.com/charmbracelet/lipgloss"
)

type peopleColumn struct {
	field model.Field
	width int
}

// PeopleModel renders one page of people.
type PeopleModel struct {
	rows   []model.Person
	cursor int
	offset int

	viewportHeight int

	columns []peopleColumn
}

// NewPeopleModel creates a new people table.
func NewPeopleModel(rows []model.Person) *PeopleModel {
	m := &PeopleModel{
		columns: []peopleColumn{
			{field: model.FieldUserName, width: 20},
			{field: model.FieldFirstName, width: 14},
			{field: model.FieldLastName, width: 14},
			{field: model.FieldMiddleName, width: 14},
			{field: model.FieldGender, width: 8},
			{field: model.FieldAge, width: 5},
		},
	}
	m.SetRows(rows)
	return m
}

// SetRows replaces every visible row.
func (m *PeopleModel) SetRows(rows []model.Person) {
	m.rows = append([]model.Person(nil), rows...)
	m.clampCursor()
}

// Rows returns the rows currently shown.
func (m *PeopleModel) Rows() []model.Person {
	return m.rows
}

// Selected returns the row under the cursor.
func (m *PeopleModel) Selected() (model.Person, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Person{}, false
	}
	return m.rows[m.cursor], true
}

func (m *PeopleModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// personCells projects a record onto the fixed column order.
func personCells(p model.Person) []string {
	cells := make([]string, 0, len(model.Fields))
	for _, f := range model.Fields {
		cells = append(cells, util.DisplayValue(p.Value(f)))
	}
	return cells
}

// View renders the table.
func (m *PeopleModel) View(width, height int) string {
	if len(m.rows) == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render("No matching people.\nPress  r  to refresh or  f  to change the filter.")
	}

	widths := make([]int, 0, len(m.columns))
	headers := make([]string, 0, len(m.columns))
	totalFixed := 0
	for _, col := range m.columns {
		label := strings.ToUpper(col.field.Label())
		cellWidth := max(col.width+2, lipgloss.Width(label)+2)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if extra := width - totalFixed; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := height - 3
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	m.viewportHeight = visibleHeight
	if m.cursor >= m.offset+visibleHeight {
		m.offset = m.cursor - visibleHeight + 1
	}

	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := personCells(m.rows[i])
		for j, col := range m.columns {
			cells[j] = util.TruncateString(cells[j], max(col.width, widths[j]-2))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("%d rows  ·  row %d/%d", len(m.rows), m.cursor+1, len(m.rows)))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", total))
}

// MoveDown moves the cursor down.
func (m *PeopleModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *PeopleModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first row.
func (m *PeopleModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *PeopleModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a screen.
func (m *PeopleModel) HalfPageDown(pageSize int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(m.cursor+pageSize/2, len(m.rows)-1)
	vh := m.viewportHeight
	if vh == 0 {
		vh = 10
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a screen.
func (m *PeopleModel) HalfPageUp(pageSize int) {
	m.cursor = max(m.cursor-pageSize/2, 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
