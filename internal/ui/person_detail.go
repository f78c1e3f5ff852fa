package ui

import (
	"strings"

	"odatatable/internal/model"
	"odatatable/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// PersonDetailModel shows every field of one record.
type PersonDetailModel struct {
	person model.Person
}

// NewPersonDetailModel creates a new detail view.
func NewPersonDetailModel(person model.Person) *PersonDetailModel {
	return &PersonDetailModel{person: person}
}

// View renders the detail panel.
func (m *PersonDetailModel) View(width, height int) string {
	labelWidth := 0
	for _, f := range model.Fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label()+":"))
	}

	fields := make([]string, 0, len(model.Fields))
	for _, f := range model.Fields {
		fields = append(fields, renderField(f.Label(), m.person.Value(f), labelWidth))
	}

	shortcuts := HelpDescStyle.Render("esc back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	content := PanelStyle.
		Width(width - 4).
		Render(strings.Join(fields, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func renderField(label, value string, labelWidth int) string {
	rendered := NormalRowStyle.UnsetPadding().Render(value)
	if value == "" {
		rendered = PlaceholderStyle.Render(util.Placeholder)
	}
	return LabelStyle.Width(labelWidth+1).Render(label+":") + rendered
}
