package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for the table screen.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	Select       key.Binding
	Back         key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	PageSizeUp   key.Binding
	PageSizeDown key.Binding
	Sort         key.Binding
	Filter       key.Binding
	ClearSort    key.Binding
	ClearFilter  key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left", "pgup"),
			key.WithHelp("h/←", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("l/→", "next page"),
		),
		PageSizeUp: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "page size +"),
		),
		PageSizeDown: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "page size -"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		ClearSort: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear sort"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PopupKeyMap defines keybindings inside the sort and filter popups.
type PopupKeyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	Up         key.Binding
	Down       key.Binding
	OptionPrev key.Binding
	OptionNext key.Binding
	Add        key.Binding
	Delete     key.Binding
	Submit     key.Binding
	Reset      key.Binding
	Cancel     key.Binding
}

// DefaultPopupKeyMap returns the default popup keybindings.
func DefaultPopupKeyMap() PopupKeyMap {
	return PopupKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "prev row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "next row"),
		),
		OptionPrev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev option"),
		),
		OptionNext: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→", "next option"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+n", "a"),
			key.WithHelp("ctrl+n", "add row"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+x", "d"),
			key.WithHelp("ctrl+x", "delete row"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s", "enter"),
			key.WithHelp("enter", "apply"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
