// Package grid holds the table's query state and its transitions.
//
// State is a value type: every transition returns a new State and leaves the
// receiver untouched, so event handlers can compute the next state, issue a
// fetch for it and keep the previous one around for comparison.
package grid

import (
	"fmt"

	"odatatable/internal/model"
	"odatatable/internal/query"

	"github.com/samber/lo"
)

// State is the page, sort and filter state of the table.
type State struct {
	Page   model.PageState
	Sort   []model.SortCriterion
	Filter []model.FilterCriterion
}

// New returns the initial state for the given page size.
func New(pageSize int) (State, error) {
	if !ValidPageSize(pageSize) {
		return State{}, fmt.Errorf("page size %d not in %v", pageSize, model.PageSizeOptions)
	}
	return State{
		Page: model.PageState{CurrentPage: 1, ItemsPerPage: pageSize},
	}, nil
}

// ValidPageSize reports whether n is one of the fixed page sizes.
func ValidPageSize(n int) bool {
	return lo.Contains(model.PageSizeOptions, n)
}

// TotalPages is ceil(total/size), 0 when there are no results.
func (s State) TotalPages() int {
	if s.Page.ItemsPerPage <= 0 || s.Page.TotalCount <= 0 {
		return 0
	}
	return (s.Page.TotalCount + s.Page.ItemsPerPage - 1) / s.Page.ItemsPerPage
}

// HasPrev reports whether the Previous control is enabled.
func (s State) HasPrev() bool {
	return s.Page.CurrentPage != 1
}

// HasNext reports whether the Next control is enabled.
func (s State) HasNext() bool {
	total := s.TotalPages()
	return total != 0 && s.Page.CurrentPage != total
}

// PrevPage moves back one page. ok is false when already on the first page.
func (s State) PrevPage() (State, bool) {
	if s.Page.CurrentPage <= 1 {
		return s, false
	}
	next := s.clone()
	next.Page.CurrentPage--
	return next, true
}

// NextPage moves forward one page. ok is false on the last page.
func (s State) NextPage() (State, bool) {
	if s.Page.CurrentPage >= s.TotalPages() {
		return s, false
	}
	next := s.clone()
	next.Page.CurrentPage++
	return next, true
}

// WithPage jumps to page n, or page 1 when n is not positive. The upper bound
// is applied by WithTotal once the total count is known.
func (s State) WithPage(n int) State {
	next := s.clone()
	next.Page.CurrentPage = max(n, 1)
	return next
}

// WithPageSize switches page size and returns to the first page.
func (s State) WithPageSize(size int) (State, error) {
	if !ValidPageSize(size) {
		return s, fmt.Errorf("page size %d not in %v", size, model.PageSizeOptions)
	}
	next := s.clone()
	next.Page.ItemsPerPage = size
	next.Page.CurrentPage = 1
	return next, nil
}

// CyclePageSize moves to the neighbouring page size, wrapping around.
func (s State) CyclePageSize(delta int) State {
	idx := lo.IndexOf(model.PageSizeOptions, s.Page.ItemsPerPage)
	n := len(model.PageSizeOptions)
	idx = ((idx+delta)%n + n) % n
	next, _ := s.WithPageSize(model.PageSizeOptions[idx])
	return next
}

// WithSort replaces the sort keys. The current page is kept.
func (s State) WithSort(criteria []model.SortCriterion) State {
	next := s.clone()
	next.Sort = append([]model.SortCriterion(nil), criteria...)
	return next
}

// WithFilter replaces the filter, dropping empty values, and returns to page 1.
func (s State) WithFilter(criteria []model.FilterCriterion) State {
	next := s.clone()
	next.Filter = lo.Filter(criteria, func(c model.FilterCriterion, _ int) bool {
		return c.Value != ""
	})
	next.Page.CurrentPage = 1
	return next
}

// ResetSort clears the sort keys.
func (s State) ResetSort() State {
	return s.WithSort(nil)
}

// ResetFilter clears the filter. The page only resets when a filter was active.
func (s State) ResetFilter() State {
	if len(s.Filter) == 0 {
		return s.clone()
	}
	return s.WithFilter(nil)
}

// Refresh returns to page 1 with no sort or filter. Page size is kept.
func (s State) Refresh() State {
	return State{
		Page: model.PageState{
			CurrentPage:  1,
			ItemsPerPage: s.Page.ItemsPerPage,
			TotalCount:   s.Page.TotalCount,
		},
	}
}

// WithTotal records the total count of a fetch and clamps the current page
// into range. clamped is true when the page number had to move.
func (s State) WithTotal(total int) (next State, clamped bool) {
	next = s.clone()
	if total < 0 {
		total = 0
	}
	next.Page.TotalCount = total
	last := max(1, next.TotalPages())
	switch {
	case next.Page.CurrentPage > last:
		next.Page.CurrentPage = last
		clamped = true
	case next.Page.CurrentPage < 1:
		next.Page.CurrentPage = 1
		clamped = true
	}
	return next, clamped
}

// Request builds the page request for this state.
func (s State) Request() query.Request {
	return query.Build(s.Page, s.Sort, s.Filter)
}

func (s State) clone() State {
	return State{
		Page:   s.Page,
		Sort:   append([]model.SortCriterion(nil), s.Sort...),
		Filter: append([]model.FilterCriterion(nil), s.Filter...),
	}
}
