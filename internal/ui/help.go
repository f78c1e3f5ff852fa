package ui

import (
	"strings"

	"odatatable/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(popup model.Popup, mode model.Mode, width int) string {
	switch popup {
	case model.PopupSort:
		return renderSortHelp(width)
	case model.PopupFilter:
		if mode == model.ModeInsert {
			return renderInsertHelp(width)
		}
		return renderFilterHelp(width)
	case model.PopupDetail:
		return renderDetailHelp(width)
	default:
		return renderTableHelp(width)
	}
}

func renderTableHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "prev/next page"),
		helpKey("z/Z", "page size"),
		helpKey("s", "sort"),
		helpKey("f", "filter"),
		helpKey("x/X", "clear sort/filter"),
		helpKey("r", "refresh"),
		helpKey("enter", "details"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderSortHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("←/→", "change"),
		helpKey("ctrl+n", "add"),
		helpKey("ctrl+x", "delete"),
		helpKey("enter", "apply"),
		helpKey("ctrl+r", "reset"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderFilterHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("←/→", "change"),
		helpKey("ctrl+n", "add"),
		helpKey("ctrl+x", "delete"),
		helpKey("enter", "search"),
		helpKey("ctrl+r", "reset"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderInsertHelp(width int) string {
	keys := []string{
		helpKey("type", "value"),
		helpKey("tab", "next field"),
		helpKey("enter", "search"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(width int) string {
	keys := []string{
		helpKey("esc", "back"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Table"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d", "Half page down"},
			{"ctrl+u", "Half page up"},
			{"enter", "Show every field of the row"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}),
		titleSection("Paging"),
		helpSection([]helpItem{
			{"h / ← / pgup", "Previous page"},
			{"l / → / pgdown", "Next page"},
			{"z / Z", "Next / previous page size"},
		}),
		titleSection("Criteria"),
		helpSection([]helpItem{
			{"s", "Open sort"},
			{"f", "Open filter"},
			{"x", "Clear sort"},
			{"X", "Clear filter"},
			{"r", "Refresh (clears sort, filter and page)"},
		}),
		titleSection("Sort / Filter popup"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"j / k", "Next / previous row"},
			{"h / l", "Change selection"},
			{"ctrl+n", "Add row"},
			{"ctrl+x", "Delete row"},
			{"enter / ctrl+s", "Apply"},
			{"ctrl+r", "Reset"},
			{"esc", "Cancel"},
		}),
		titleSection("Mouse"),
		helpSection([]helpItem{
			{"click Sort / Filter", "Open popup"},
			{"click ✕", "Clear criteria"},
			{"click Refresh", "Refresh"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
