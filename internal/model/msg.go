package model

// Bubble Tea message types

// PeopleLoadedMsg is sent when a page fetch succeeds.
type PeopleLoadedMsg struct {
	Seq        int
	People     []Person
	TotalCount int
}

// FetchFailedMsg is sent when a page fetch fails.
type FetchFailedMsg struct {
	Seq int
	Err error
}

// SortSubmittedMsg carries the criteria read from the sort popup.
type SortSubmittedMsg struct {
	Criteria []SortCriterion
}

// FilterSubmittedMsg carries the criteria read from the filter popup.
type FilterSubmittedMsg struct {
	Criteria []FilterCriterion
}

// SortResetMsg is sent when the sort popup is reset.
type SortResetMsg struct{}

// FilterResetMsg is sent when the filter popup is reset.
type FilterResetMsg struct{}

// PopupCancelledMsg is sent when a popup is closed without submitting.
type PopupCancelledMsg struct{}

// Popup identifies the modal editor shown over the table.
type Popup int

const (
	PopupNone Popup = iota
	PopupSort
	PopupFilter
	PopupDetail
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
