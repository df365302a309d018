package terminal

import (
	"context"

	"statcompare/app"
	"statcompare/domain/dataset"
	"statcompare/domain/stats"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model for one loaded table. Every selection change
// re-runs the pipeline against the table; nothing else is carried over.
type Model struct {
	service  *app.ComparisonService
	table    *dataset.Table
	filename string

	sel     stats.Selection
	outcome *app.Outcome
	cursor  int

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// NewModel starts on the t-test with nothing selected
func NewModel(service *app.ComparisonService, table *dataset.Table, filename string) Model {
	m := Model{
		service:  service,
		table:    table,
		filename: filename,
		sel:      stats.Selection{Test: stats.KindTTest},
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	return m.evaluate()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.table.ColumnNames()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTest):
		m.sel.Test = shiftKind(m.sel.Test, 1)
	case key.Matches(msg, m.keys.PrevTest):
		m.sel.Test = shiftKind(m.sel.Test, -1)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(names)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if len(names) == 0 {
			return m, nil
		}
		m.sel.Columns = toggle(m.sel.Columns, names[m.cursor])
	case key.Matches(msg, m.keys.Group):
		if len(names) == 0 {
			return m, nil
		}
		m.sel.GroupColumn = names[m.cursor]
	case key.Matches(msg, m.keys.Clear):
		m.sel.Columns = nil
	default:
		return m, nil
	}
	return m.evaluate(), nil
}

func (m Model) evaluate() Model {
	group := m.sel.GroupColumn
	m.outcome = m.service.EvaluateTable(context.Background(), m.table, m.sel)
	m.sel = m.outcome.Selection
	if m.sel.Test != stats.KindANOVA {
		// keep the grouping choice around for when ANOVA is selected again
		m.sel.GroupColumn = group
	}
	return m
}

// Selection returns the current widget state
func (m Model) Selection() stats.Selection {
	return m.sel
}

// Outcome returns the latest evaluation
func (m Model) Outcome() *app.Outcome {
	return m.outcome
}

func shiftKind(k stats.TestKind, step int) stats.TestKind {
	n := len(stats.AllKinds)
	for i, known := range stats.AllKinds {
		if known == k {
			return stats.AllKinds[((i+step)%n+n)%n]
		}
	}
	return stats.AllKinds[0]
}

// toggle adds name at the end or removes it, so selection order follows
// the order columns were picked in.
func toggle(columns []string, name string) []string {
	out := make([]string, 0, len(columns)+1)
	found := false
	for _, c := range columns {
		if c == name {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, name)
	}
	return out
}
