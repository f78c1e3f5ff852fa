package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"odatatable/internal/grid"
	"odatatable/internal/model"
	"odatatable/internal/odata"
	"odatatable/internal/query"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fetcher loads one page of people.
type Fetcher interface {
	FetchPeople(ctx context.Context, req query.Request) (*odata.Page, error)
}

// Model is the root Bubble Tea model.
type Model struct {
	fetcher  Fetcher
	endpoint string
	logger   *slog.Logger

	state  grid.State
	shown  model.PageState
	popup  model.Popup
	gState GState

	width  int
	height int

	showingHelp bool

	people       *PeopleModel
	detail       *PersonDetailModel
	sortEditor   *CriteriaEditorModel
	filterEditor *CriteriaEditorModel

	loading     bool
	spinner     spinner.Model
	fetchSeq    int
	cancelFetch context.CancelFunc
	initCmd     tea.Cmd

	keys KeyMap
}

// New creates a new root model and queues the first fetch for state.
func New(fetcher Fetcher, endpoint string, state grid.State, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorGreen)

	m := Model{
		fetcher:      fetcher,
		endpoint:     endpoint,
		logger:       logger,
		state:        state,
		shown:        state.Page,
		popup:        model.PopupNone,
		gState:       GStateIdle,
		people:       NewPeopleModel(nil),
		sortEditor:   NewSortEditor(),
		filterEditor: NewFilterEditor(),
		spinner:      sp,
		keys:         DefaultKeyMap(),
	}
	m.sortEditor.LoadSort(state.Sort)
	m.filterEditor.LoadFilter(state.Filter)
	m.initCmd = m.fetch()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// State returns the current table state.
func (m Model) State() grid.State {
	return m.state
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopFetch()
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.popup != model.PopupNone {
			return m.handlePopupKey(msg)
		}
		return m.handleNavMode(msg)

	case model.PeopleLoadedMsg:
		if msg.Seq != m.fetchSeq {
			m.logger.Debug("discarding stale response", "seq", msg.Seq, "latest", m.fetchSeq)
			return m, nil
		}
		m.finishFetch()
		m.people.SetRows(msg.People)
		next, clamped := m.state.WithTotal(msg.TotalCount)
		m.state = next
		m.shown = next.Page
		if clamped && msg.TotalCount > 0 {
			m.logger.Info("page out of range, reloading", "page", m.state.Page.CurrentPage)
			return m, m.fetch()
		}
		return m, nil

	case model.FetchFailedMsg:
		if msg.Seq != m.fetchSeq {
			m.logger.Debug("discarding stale failure", "seq", msg.Seq, "latest", m.fetchSeq, "error", msg.Err)
			return m, nil
		}
		m.finishFetch()
		m.state.Page = m.shown
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		m.logger.Error("failed to load people", "seq", msg.Seq, "error", msg.Err)
		return m, nil

	case model.SortSubmittedMsg:
		m.state = m.state.WithSort(msg.Criteria)
		m.popup = model.PopupNone
		return m, m.fetch()

	case model.FilterSubmittedMsg:
		m.state = m.state.WithFilter(msg.Criteria)
		m.popup = model.PopupNone
		return m, m.fetch()

	case model.SortResetMsg:
		m.state = m.state.ResetSort()
		return m, m.fetch()

	case model.FilterResetMsg:
		m.state = m.state.ResetFilter()
		return m, m.fetch()

	case model.PopupCancelledMsg:
		m.popup = model.PopupNone
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleNavMode handles input while the table has focus.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateFirstG {
			m.people.JumpToTop()
			m.gState = GStateIdle
			return m, nil
		}
		m.gState = GStateFirstG
		return m, nil
	}
	m.gState = GStateIdle

	var t tableController = m.people

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopFetch()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showingHelp = true
	case key.Matches(msg, m.keys.Down):
		t.MoveDown()
	case key.Matches(msg, m.keys.Up):
		t.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		t.HalfPageDown(m.tableHeight())
	case key.Matches(msg, m.keys.HalfPageUp):
		t.HalfPageUp(m.tableHeight())
	case key.Matches(msg, m.keys.Select):
		if p, ok := t.Selected(); ok {
			m.detail = NewPersonDetailModel(p)
			m.popup = model.PopupDetail
		}
	case key.Matches(msg, m.keys.PrevPage):
		if next, ok := m.state.PrevPage(); ok {
			m.state = next
			return m, m.fetch()
		}
	case key.Matches(msg, m.keys.NextPage):
		if next, ok := m.state.NextPage(); ok {
			m.state = next
			return m, m.fetch()
		}
	case key.Matches(msg, m.keys.PageSizeUp):
		m.state = m.state.CyclePageSize(1)
		return m, m.fetch()
	case key.Matches(msg, m.keys.PageSizeDown):
		m.state = m.state.CyclePageSize(-1)
		return m, m.fetch()
	case key.Matches(msg, m.keys.Sort):
		return m.runAction(actionOpenSort)
	case key.Matches(msg, m.keys.Filter):
		return m.runAction(actionOpenFilter)
	case key.Matches(msg, m.keys.ClearSort):
		return m.runAction(actionClearSort)
	case key.Matches(msg, m.keys.ClearFilter):
		return m.runAction(actionClearFilter)
	case key.Matches(msg, m.keys.Refresh):
		return m.runAction(actionRefresh)
	}
	return m, nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.popup {
	case model.PopupSort:
		return m, m.sortEditor.Update(msg)
	case model.PopupFilter:
		return m, m.filterEditor.Update(msg)
	case model.PopupDetail:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.popup = model.PopupNone
			m.detail = nil
		case key.Matches(msg, m.keys.Quit):
			m.stopFetch()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.showingHelp || m.popup != model.PopupNone {
		return m, nil
	}
	if msg.Y != lipgloss.Height(m.renderHeader()) {
		return m, nil
	}
	_, segments := m.controlBar()
	return m.runAction(hitControl(segments, msg.X))
}

// runAction applies a control bar action, whether it came from a key or a click.
func (m Model) runAction(action controlAction) (tea.Model, tea.Cmd) {
	switch action {
	case actionOpenSort:
		m.popup = model.PopupSort
	case actionOpenFilter:
		m.popup = model.PopupFilter
	case actionClearSort:
		if len(m.state.Sort) == 0 {
			return m, nil
		}
		m.state = m.state.ResetSort()
		m.sortEditor.Clear()
		return m, m.fetch()
	case actionClearFilter:
		if len(m.state.Filter) == 0 {
			return m, nil
		}
		m.state = m.state.ResetFilter()
		m.filterEditor.Clear()
		return m, m.fetch()
	case actionRefresh:
		m.state = m.state.Refresh()
		m.sortEditor.Clear()
		m.filterEditor.Clear()
		return m, m.fetch()
	}
	return m, nil
}

// fetch cancels any fetch in flight and requests the page for the current
// state. Only the response carrying the newest sequence number is applied.
func (m *Model) fetch() tea.Cmd {
	m.stopFetch()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel
	m.fetchSeq++

	req := m.state.Request()
	m.logger.Debug("requesting page", "seq", m.fetchSeq, "query", req.Encode())

	cmd := fetchPeopleCmd(ctx, m.fetcher, req, m.fetchSeq)
	if m.loading {
		return cmd
	}
	m.loading = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) finishFetch() {
	m.loading = false
	m.stopFetch()
}

func (m *Model) stopFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func (m Model) controlBar() (string, []controlSegment) {
	return renderControlBar(len(m.state.Sort), len(m.state.Filter))
}

func (m Model) tableHeight() int {
	if m.people.viewportHeight > 0 {
		return m.people.viewportHeight
	}
	return m.state.Page.ItemsPerPage
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	header := m.renderHeader()
	bar, _ := m.controlBar()
	shown := m.state
	shown.Page = m.shown
	pagination := renderPagination(shown, len(m.people.Rows()), m.width)
	footer := RenderHelp(m.popup, m.mode(), m.width)

	contentHeight := m.height -
		lipgloss.Height(header) -
		lipgloss.Height(bar) -
		lipgloss.Height(pagination) -
		lipgloss.Height(footer)
	contentHeight = max(contentHeight, 1)

	var content string
	switch m.popup {
	case model.PopupSort:
		content = m.sortEditor.View(m.width, contentHeight)
	case model.PopupFilter:
		content = m.filterEditor.View(m.width, contentHeight)
	case model.PopupDetail:
		if m.detail != nil {
			content = m.detail.View(m.width, contentHeight)
		}
	default:
		content = m.people.View(m.width, contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, pagination, footer)
}

func (m Model) mode() model.Mode {
	if m.popup == model.PopupFilter && m.filterEditor.Editing() {
		return model.ModeInsert
	}
	return model.ModeNav
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("odatatable")

	crumbs := []string{"People"}
	switch m.popup {
	case model.PopupSort:
		crumbs = append(crumbs, "Sort")
	case model.PopupFilter:
		crumbs = append(crumbs, "Filter")
	case model.PopupDetail:
		if m.detail != nil {
			crumbs = append(crumbs, m.detail.person.UserName)
		}
	}
	separator := BreadcrumbStyle.Render(" › ")
	parts := make([]string, len(crumbs))
	for i, part := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = BreadcrumbActiveStyle.Render(part)
		} else {
			parts[i] = BreadcrumbStyle.Render(part)
		}
	}
	left := "  " + title + separator + strings.Join(parts, separator)

	right := BreadcrumbStyle.Render(m.endpoint) + "  "
	if m.loading {
		right = m.spinner.View() + BreadcrumbStyle.Render(" loading") + "  "
	}

	padding := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

// Commands

func fetchPeopleCmd(ctx context.Context, fetcher Fetcher, req query.Request, seq int) tea.Cmd {
	return func() tea.Msg {
		page, err := fetcher.FetchPeople(ctx, req)
		if err != nil {
			return model.FetchFailedMsg{Seq: seq, Err: err}
		}
		return model.PeopleLoadedMsg{Seq: seq, People: page.Value, TotalCount: page.Count}
	}
}
