package ui

import (
	"strings"

	"odatatable/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type criteriaKind int

const (
	sortCriteria criteriaKind = iota
	filterCriteria
)

const (
	columnField = iota
	columnChoice
	columnValue
)

// criterionRow is one editable criterion: field, direction or operator, and
// for filters a value.
type criterionRow struct {
	field  model.Field
	choice int
	value  textinput.Model
}

// CriteriaEditorModel is the sort or filter popup.
type CriteriaEditorModel struct {
	kind   criteriaKind
	rows   []criterionRow
	cursor int
	column int
	keys   PopupKeyMap
}

// NewSortEditor creates an empty sort popup.
func NewSortEditor() *CriteriaEditorModel {
	return &CriteriaEditorModel{kind: sortCriteria, keys: DefaultPopupKeyMap()}
}

// NewFilterEditor creates an empty filter popup.
func NewFilterEditor() *CriteriaEditorModel {
	return &CriteriaEditorModel{kind: filterCriteria, keys: DefaultPopupKeyMap()}
}

// Len returns the number of rows.
func (m *CriteriaEditorModel) Len() int {
	return len(m.rows)
}

// AddRow appends a default row and focuses it.
func (m *CriteriaEditorModel) AddRow() {
	row := criterionRow{field: model.Fields[0]}
	if m.kind == filterCriteria {
		row.value = textinput.New()
		row.value.Placeholder = "Value"
		row.value.CharLimit = 100
		row.value.Width = 16
	}
	m.rows = append(m.rows, row)
	m.focus(len(m.rows)-1, columnField)
}

// DeleteRow removes only row i.
func (m *CriteriaEditorModel) DeleteRow(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	m.focus(min(m.cursor, len(m.rows)-1), m.column)
}

// Clear removes every row.
func (m *CriteriaEditorModel) Clear() {
	m.rows = nil
	m.cursor = 0
	m.column = columnField
}

// SetField changes the field of row i. For filters the operator list is
// rebuilt for the new field type and its first entry selected.
func (m *CriteriaEditorModel) SetField(i int, f model.Field) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.rows[i].field = f
	if m.kind == filterCriteria {
		m.rows[i].choice = 0
	}
}

// CycleField moves row i's field selector by delta, wrapping around.
func (m *CriteriaEditorModel) CycleField(i, delta int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	idx := 0
	for j, f := range model.Fields {
		if f == m.rows[i].field {
			idx = j
			break
		}
	}
	m.SetField(i, model.Fields[wrap(idx+delta, len(model.Fields))])
}

// CycleChoice moves row i's direction or operator selector by delta.
func (m *CriteriaEditorModel) CycleChoice(i, delta int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.rows[i].choice = wrap(m.rows[i].choice+delta, len(m.options(i)))
}

// SetValue sets row i's filter value.
func (m *CriteriaEditorModel) SetValue(i int, v string) {
	if i < 0 || i >= len(m.rows) || m.kind != filterCriteria {
		return
	}
	m.rows[i].value.SetValue(v)
}

// Operators returns the operators offered by row i.
func (m *CriteriaEditorModel) Operators(i int) []model.Operator {
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return model.OperatorsFor(m.rows[i].field)
}

// SelectOperator selects op on row i if the row's field offers it.
func (m *CriteriaEditorModel) SelectOperator(i int, op model.Operator) bool {
	for j, candidate := range m.Operators(i) {
		if candidate == op {
			m.rows[i].choice = j
			return true
		}
	}
	return false
}

// SelectDirection selects d on row i.
func (m *CriteriaEditorModel) SelectDirection(i int, d model.Direction) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	for j, candidate := range model.Directions {
		if candidate == d {
			m.rows[i].choice = j
		}
	}
}

// SortCriteria reads the rows in order.
func (m *CriteriaEditorModel) SortCriteria() []model.SortCriterion {
	criteria := make([]model.SortCriterion, 0, len(m.rows))
	for _, r := range m.rows {
		criteria = append(criteria, model.SortCriterion{
			Field:     r.field,
			Direction: model.Directions[wrap(r.choice, len(model.Directions))],
		})
	}
	return criteria
}

// FilterCriteria reads the rows in order, skipping rows without a value.
func (m *CriteriaEditorModel) FilterCriteria() []model.FilterCriterion {
	criteria := make([]model.FilterCriterion, 0, len(m.rows))
	for _, r := range m.rows {
		value := r.value.Value()
		if value == "" {
			continue
		}
		ops := model.OperatorsFor(r.field)
		criteria = append(criteria, model.FilterCriterion{
			Field:    r.field,
			Operator: ops[wrap(r.choice, len(ops))],
			Value:    value,
		})
	}
	return criteria
}

// LoadSort replaces the rows with the given criteria.
func (m *CriteriaEditorModel) LoadSort(criteria []model.SortCriterion) {
	m.Clear()
	for _, c := range criteria {
		m.AddRow()
		i := len(m.rows) - 1
		m.SetField(i, c.Field)
		m.SelectDirection(i, c.Direction)
	}
	m.focus(0, columnField)
}

// LoadFilter replaces the rows with the given criteria.
func (m *CriteriaEditorModel) LoadFilter(criteria []model.FilterCriterion) {
	m.Clear()
	for _, c := range criteria {
		m.AddRow()
		i := len(m.rows) - 1
		m.SetField(i, c.Field)
		m.SelectOperator(i, c.Operator)
		m.SetValue(i, c.Value)
	}
	m.focus(0, columnField)
}

// Editing reports whether keystrokes currently go to a value input.
func (m *CriteriaEditorModel) Editing() bool {
	return m.kind == filterCriteria && m.column == columnValue && m.cursor < len(m.rows)
}

// Update handles input.
func (m *CriteriaEditorModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.Editing() && passesToInput(msg) {
		var cmd tea.Cmd
		m.rows[m.cursor].value, cmd = m.rows[m.cursor].value.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		return func() tea.Msg { return model.PopupCancelledMsg{} }
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Add):
		m.AddRow()
	case key.Matches(msg, m.keys.Delete):
		m.DeleteRow(m.cursor)
	case key.Matches(msg, m.keys.NextField):
		m.nextField()
	case key.Matches(msg, m.keys.PrevField):
		m.prevField()
	case key.Matches(msg, m.keys.Up):
		m.focus(m.cursor-1, m.column)
	case key.Matches(msg, m.keys.Down):
		m.focus(m.cursor+1, m.column)
	case key.Matches(msg, m.keys.OptionNext):
		m.cycleFocused(1)
	case key.Matches(msg, m.keys.OptionPrev):
		m.cycleFocused(-1)
	}
	return nil
}

func (m *CriteriaEditorModel) submit() tea.Cmd {
	if m.kind == sortCriteria {
		criteria := m.SortCriteria()
		return func() tea.Msg { return model.SortSubmittedMsg{Criteria: criteria} }
	}
	criteria := m.FilterCriteria()
	return func() tea.Msg { return model.FilterSubmittedMsg{Criteria: criteria} }
}

func (m *CriteriaEditorModel) reset() tea.Cmd {
	m.Clear()
	if m.kind == sortCriteria {
		return func() tea.Msg { return model.SortResetMsg{} }
	}
	return func() tea.Msg { return model.FilterResetMsg{} }
}

func (m *CriteriaEditorModel) cycleFocused(delta int) {
	switch m.column {
	case columnField:
		m.CycleField(m.cursor, delta)
	case columnChoice:
		m.CycleChoice(m.cursor, delta)
	}
}

func (m *CriteriaEditorModel) columns() int {
	if m.kind == filterCriteria {
		return 3
	}
	return 2
}

func (m *CriteriaEditorModel) nextField() {
	if len(m.rows) == 0 {
		return
	}
	if m.column+1 < m.columns() {
		m.focus(m.cursor, m.column+1)
		return
	}
	m.focus((m.cursor+1)%len(m.rows), columnField)
}

func (m *CriteriaEditorModel) prevField() {
	if len(m.rows) == 0 {
		return
	}
	if m.column > 0 {
		m.focus(m.cursor, m.column-1)
		return
	}
	m.focus(wrap(m.cursor-1, len(m.rows)), m.columns()-1)
}

func (m *CriteriaEditorModel) focus(row, column int) {
	if m.cursor < len(m.rows) && m.kind == filterCriteria {
		m.rows[m.cursor].value.Blur()
	}
	if len(m.rows) == 0 {
		m.cursor = 0
		m.column = columnField
		return
	}
	m.cursor = max(0, min(row, len(m.rows)-1))
	m.column = max(0, min(column, m.columns()-1))
	if m.Editing() {
		m.rows[m.cursor].value.Focus()
	}
}

func (m *CriteriaEditorModel) options(i int) []string {
	if m.kind == sortCriteria {
		labels := make([]string, 0, len(model.Directions))
		for _, d := range model.Directions {
			labels = append(labels, d.Label())
		}
		return labels
	}
	ops := model.OperatorsFor(m.rows[i].field)
	labels := make([]string, 0, len(ops))
	for _, op := range ops {
		labels = append(labels, op.Label())
	}
	return labels
}

func (m *CriteriaEditorModel) title() string {
	if m.kind == sortCriteria {
		return "Sort by"
	}
	return "Filter"
}

// View renders the popup.
func (m *CriteriaEditorModel) View(width, height int) string {
	var lines []string
	lines = append(lines, LabelStyle.Render(m.title()), "")

	if len(m.rows) == 0 {
		lines = append(lines, HelpDescStyle.Render("No criteria. Press ctrl+n to add one."))
	}
	for i, r := range m.rows {
		options := m.options(i)
		cells := []string{
			m.renderCell(i, columnField, r.field.Label()+" ▾", 14),
			m.renderCell(i, columnChoice, options[wrap(r.choice, len(options))]+" ▾", 14),
		}
		if m.kind == filterCriteria {
			style := CellStyle
			if i == m.cursor && m.column == columnValue {
				style = FocusedCellStyle
			}
			cells = append(cells, style.Render(r.value.View()))
		}
		cells = append(cells, HelpDescStyle.Render(" ✕"))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left, joinCells(cells)...))
	}

	lines = append(lines, "", renderPopupHints())

	return PopupStyle.
		Width(min(width-4, 80)).
		Render(strings.Join(lines, "\n"))
}

func (m *CriteriaEditorModel) renderCell(row, column int, text string, width int) string {
	style := CellStyle
	if row == m.cursor && column == m.column {
		style = FocusedCellStyle
	}
	return style.Width(width + 2).Render(text)
}

func joinCells(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

func renderPopupHints() string {
	return strings.Join([]string{
		helpKey("ctrl+n", "add"),
		helpKey("ctrl+x", "delete"),
		helpKey("←/→", "change"),
		helpKey("enter", "apply"),
		helpKey("ctrl+r", "reset"),
		helpKey("esc", "cancel"),
	}, "  ")
}

// passesToInput reports whether a key edits text rather than driving the popup.
func passesToInput(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyLeft, tea.KeyRight, tea.KeyBackspace, tea.KeyDelete,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlK, tea.KeyCtrlU, tea.KeyCtrlW:
		return true
	}
	return false
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
