package grid

import (
	"testing"

	"odatatable/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWith(t *testing.T, size, total, page int) State {
	t.Helper()
	s, err := New(size)
	require.NoError(t, err)
	s.Page.TotalCount = total
	s.Page.CurrentPage = page
	return s
}

func TestNewRejectsUnknownPageSize(t *testing.T) {
	_, err := New(7)
	assert.Error(t, err)

	s, err := New(25)
	require.NoError(t, err)
	assert.Equal(t, model.PageState{CurrentPage: 1, ItemsPerPage: 25}, s.Page)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		size, total, want int
	}{
		{10, 0, 0},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{10, 25, 3},
		{5, 25, 5},
		{50, 20, 1},
	}
	for _, tt := range tests {
		s := stateWith(t, tt.size, tt.total, 1)
		assert.Equal(t, tt.want, s.TotalPages(), "size=%d total=%d", tt.size, tt.total)
	}
}

func TestPrevNextEnablement(t *testing.T) {
	tests := []struct {
		name             string
		total, page      int
		wantPrev, wantNx bool
	}{
		{"empty", 0, 1, false, false},
		{"single page", 7, 1, false, false},
		{"first of three", 25, 1, false, true},
		{"middle", 25, 2, true, true},
		{"last", 25, 3, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateWith(t, 10, tt.total, tt.page)
			assert.Equal(t, tt.wantPrev, s.HasPrev())
			assert.Equal(t, tt.wantNx, s.HasNext())
		})
	}
}

func TestNextAndPrevPageStayInBounds(t *testing.T) {
	s := stateWith(t, 10, 25, 1)

	_, ok := s.PrevPage()
	assert.False(t, ok)

	s, ok = s.NextPage()
	require.True(t, ok)
	s, ok = s.NextPage()
	require.True(t, ok)
	assert.Equal(t, 3, s.Page.CurrentPage)

	same, ok := s.NextPage()
	assert.False(t, ok)
	assert.Equal(t, 3, same.Page.CurrentPage)

	s, ok = s.PrevPage()
	require.True(t, ok)
	assert.Equal(t, 2, s.Page.CurrentPage)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s := stateWith(t, 10, 25, 2)
	s.Sort = []model.SortCriterion{{Field: model.FieldAge, Direction: model.DirectionAsc}}

	next := s.WithSort([]model.SortCriterion{{Field: model.FieldLastName, Direction: model.DirectionDesc}})
	next.Sort[0].Direction = model.DirectionAsc
	_, _ = s.NextPage()

	assert.Equal(t, 2, s.Page.CurrentPage)
	assert.Equal(t, model.FieldAge, s.Sort[0].Field)
}

func TestWithPage(t *testing.T) {
	s := stateWith(t, 10, 0, 1)

	assert.Equal(t, 4, s.WithPage(4).Page.CurrentPage)
	assert.Equal(t, 1, s.WithPage(0).Page.CurrentPage)
	assert.Equal(t, 1, s.WithPage(-3).Page.CurrentPage)

	clamped, moved := s.WithPage(4).WithTotal(25)
	assert.True(t, moved)
	assert.Equal(t, 3, clamped.Page.CurrentPage)
}

func TestWithPageSizeResetsPage(t *testing.T) {
	s := stateWith(t, 10, 100, 4)

	next, err := s.WithPageSize(25)
	require.NoError(t, err)
	assert.Equal(t, 25, next.Page.ItemsPerPage)
	assert.Equal(t, 1, next.Page.CurrentPage)

	_, err = s.WithPageSize(11)
	assert.Error(t, err)
}

func TestCyclePageSizeWraps(t *testing.T) {
	s := stateWith(t, 50, 100, 3)

	next := s.CyclePageSize(1)
	assert.Equal(t, 5, next.Page.ItemsPerPage)
	assert.Equal(t, 1, next.Page.CurrentPage)

	prev := next.CyclePageSize(-1)
	assert.Equal(t, 50, prev.Page.ItemsPerPage)
}

func TestWithSortKeepsPage(t *testing.T) {
	s := stateWith(t, 10, 25, 3)
	next := s.WithSort([]model.SortCriterion{{Field: model.FieldAge, Direction: model.DirectionDesc}})

	assert.Equal(t, 3, next.Page.CurrentPage)
	assert.Equal(t, "Age desc", next.Request().OrderBy)
}

func TestWithFilterDropsEmptyAndResetsPage(t *testing.T) {
	s := stateWith(t, 10, 25, 3)
	next := s.WithFilter([]model.FilterCriterion{
		{Field: model.FieldFirstName, Operator: model.OperatorStartsWith, Value: "A"},
		{Field: model.FieldLastName, Operator: model.OperatorEq, Value: ""},
	})

	assert.Equal(t, 1, next.Page.CurrentPage)
	require.Len(t, next.Filter, 1)
	assert.Equal(t, "startswith(tolower(FirstName), tolower('A'))", next.Request().Filter)
}

func TestResetFilter(t *testing.T) {
	s := stateWith(t, 10, 25, 3)
	assert.Equal(t, 3, s.ResetFilter().Page.CurrentPage)

	s.Filter = []model.FilterCriterion{{Field: model.FieldAge, Operator: model.OperatorGt, Value: "3"}}
	reset := s.ResetFilter()
	assert.Empty(t, reset.Filter)
	assert.Equal(t, 1, reset.Page.CurrentPage)
}

func TestResetSortKeepsPage(t *testing.T) {
	s := stateWith(t, 10, 25, 2)
	s.Sort = []model.SortCriterion{{Field: model.FieldAge, Direction: model.DirectionAsc}}

	reset := s.ResetSort()
	assert.Empty(t, reset.Sort)
	assert.Equal(t, 2, reset.Page.CurrentPage)
}

func TestRefresh(t *testing.T) {
	s := stateWith(t, 25, 80, 3)
	s.Sort = []model.SortCriterion{{Field: model.FieldAge, Direction: model.DirectionAsc}}
	s.Filter = []model.FilterCriterion{{Field: model.FieldAge, Operator: model.OperatorGt, Value: "3"}}

	r := s.Refresh()
	assert.Equal(t, 1, r.Page.CurrentPage)
	assert.Equal(t, 25, r.Page.ItemsPerPage)
	assert.Empty(t, r.Sort)
	assert.Empty(t, r.Filter)

	req := r.Request()
	assert.Empty(t, req.OrderBy)
	assert.Empty(t, req.Filter)
	assert.NotContains(t, req.Encode(), "$orderby")
	assert.NotContains(t, req.Encode(), "$filter")
}

func TestWithTotalClampsPage(t *testing.T) {
	s := stateWith(t, 10, 100, 8)

	next, clamped := s.WithTotal(25)
	assert.True(t, clamped)
	assert.Equal(t, 3, next.Page.CurrentPage)
	assert.Equal(t, 25, next.Page.TotalCount)

	next, clamped = next.WithTotal(0)
	assert.True(t, clamped)
	assert.Equal(t, 1, next.Page.CurrentPage)

	next, clamped = next.WithTotal(40)
	assert.False(t, clamped)
	assert.Equal(t, 1, next.Page.CurrentPage)
}

func TestScenarioTwentyFiveRowsThreePages(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)
	s, _ = s.WithTotal(25)

	s, _ = s.NextPage()
	s, _ = s.NextPage()

	assert.Equal(t, 3, s.TotalPages())
	assert.Equal(t, 3, s.Page.CurrentPage)
	assert.False(t, s.HasNext())
	assert.True(t, s.HasPrev())
	assert.Equal(t, 20, s.Request().Skip)
	assert.Equal(t, 10, s.Request().Top)
}
