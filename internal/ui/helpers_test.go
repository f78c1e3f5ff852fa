package ui

import (
	"context"
	"sync"

	"odatatable/internal/model"
	"odatatable/internal/odata"
	"odatatable/internal/query"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeFetcher struct {
	mu       sync.Mutex
	requests []query.Request
	respond  func(req query.Request) (*odata.Page, error)
}

func (f *fakeFetcher) FetchPeople(ctx context.Context, req query.Request) (*odata.Page, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if respond != nil {
		return respond(req)
	}
	return &odata.Page{Value: []model.Person{}}, nil
}

func (f *fakeFetcher) last() query.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// pageOf answers every request with total rows, filling the requested window.
func pageOf(total int) func(query.Request) (*odata.Page, error) {
	return func(req query.Request) (*odata.Page, error) {
		var rows []model.Person
		for i := req.Skip; i < total && i < req.Skip+req.Top; i++ {
			rows = append(rows, model.Person{UserName: "user" + string(rune('a'+i%26))})
		}
		return &odata.Page{Count: total, Value: rows}, nil
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command it batches, returning their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// settle delivers everything cmd produces, and whatever follows from it,
// skipping spinner animation.
func settle(m Model, cmd tea.Cmd) Model {
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		var next tea.Cmd
		m, next = send(m, msg)
		queue = append(queue, drain(next)...)
	}
	return m
}

func sized(m Model) Model {
	m, _ = send(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}
