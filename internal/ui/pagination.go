package ui

import (
	"strings"

	"odatatable/internal/grid"
	"odatatable/internal/model"
	"odatatable/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// renderPagination draws Previous / page info / Next and the page-size selector.
func renderPagination(s grid.State, rows int, width int) string {
	prev := DisabledButtonStyle.Render("◀ Previous")
	if s.HasPrev() {
		prev = ButtonStyle.Render("◀ Previous")
	}
	next := DisabledButtonStyle.Render("Next ▶")
	if s.HasNext() {
		next = ButtonStyle.Render("Next ▶")
	}

	info := StatusBarStyle.Render(util.FormatPageInfo(s.Page.CurrentPage, s.TotalPages()))

	sizes := make([]string, 0, len(model.PageSizeOptions))
	for _, size := range model.PageSizeOptions {
		label := util.FormatPageSize(size)
		if size == s.Page.ItemsPerPage {
			sizes = append(sizes, ActiveButtonStyle.Render(label))
			continue
		}
		sizes = append(sizes, DisabledButtonStyle.Render(label))
	}
	selector := strings.Join(sizes, " ")

	left := lipgloss.JoinHorizontal(lipgloss.Left, prev, info, next)
	skip := (max(s.Page.CurrentPage, 1) - 1) * s.Page.ItemsPerPage
	summary := StatusBarStyle.Render(util.FormatRange(skip, rows, s.Page.TotalCount))

	gap := width - lipgloss.Width(left) - lipgloss.Width(summary) - lipgloss.Width(selector) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Width(width).Render(
		left + summary + strings.Repeat(" ", gap) + selector,
	)
}
