package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type controlAction int

const (
	actionNone controlAction = iota
	actionOpenSort
	actionClearSort
	actionOpenFilter
	actionClearFilter
	actionRefresh
)

// controlSegment is a clickable column range [start, end) of the control bar.
type controlSegment struct {
	action     controlAction
	start, end int
}

const controlBarIndent = 1

// renderControlBar draws the sort, filter and refresh buttons. The returned
// segments are ordered innermost first, so a clear icon wins over the button
// that contains it.
func renderControlBar(sortCount, filterCount int) (string, []controlSegment) {
	var (
		parts    []string
		segments []controlSegment
		x        = controlBarIndent
	)

	add := func(button string, segs []controlSegment) {
		for _, s := range segs {
			segments = append(segments, controlSegment{action: s.action, start: x + s.start, end: x + s.end})
		}
		parts = append(parts, button)
		x += lipgloss.Width(button) + 1
	}

	sortBtn, sortSegs := renderCriteriaButton("⇅", "Sort", sortCount, actionOpenSort, actionClearSort)
	add(sortBtn, sortSegs)

	filterBtn, filterSegs := renderCriteriaButton("⧩", "Filter", filterCount, actionOpenFilter, actionClearFilter)
	add(filterBtn, filterSegs)

	refreshBtn := ButtonStyle.Render("⟳ Refresh")
	add(refreshBtn, []controlSegment{{action: actionRefresh, start: 0, end: lipgloss.Width(refreshBtn)}})

	bar := lipgloss.NewStyle().PaddingLeft(controlBarIndent).Render(strings.Join(parts, " "))
	return bar, segments
}

// renderCriteriaButton returns the button and its segments relative to the
// button's first column.
func renderCriteriaButton(icon, label string, count int, open, reset controlAction) (string, []controlSegment) {
	if count == 0 {
		btn := ButtonStyle.Render(icon + " " + label)
		return btn, []controlSegment{{action: open, start: 0, end: lipgloss.Width(btn)}}
	}

	badge := BadgeStyle.Render(strconv.Itoa(count))
	text := ActiveButtonStyle.Render(label)
	icn := ClearIconStyle.Render("✕")
	btn := lipgloss.JoinHorizontal(lipgloss.Left, badge, text, icn)

	iconStart := lipgloss.Width(badge) + lipgloss.Width(text)
	return btn, []controlSegment{
		{action: reset, start: iconStart, end: iconStart + lipgloss.Width(icn)},
		{action: open, start: 0, end: lipgloss.Width(btn)},
	}
}

// hitControl resolves a click column to a single action. The first matching
// segment wins, which keeps a click on a clear icon from also opening the popup.
func hitControl(segments []controlSegment, x int) controlAction {
	for _, s := range segments {
		if x >= s.start && x < s.end {
			return s.action
		}
	}
	return actionNone
}
