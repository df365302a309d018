package terminal

import (
	"fmt"
	"strings"

	"statcompare/domain/stats"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Inferential Statistics Comparison"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s: %d rows, %d columns\n\n", m.filename, m.table.NumRows(), len(m.table.Columns)))

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(m.sel.Test.Prompt()))
	b.WriteString("\n")
	b.WriteString(m.renderColumns())

	if m.outcome != nil && m.outcome.Ran() {
		b.WriteString("\n")
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(stats.AllKinds))
	for i, k := range stats.AllKinds {
		if k == m.sel.Test {
			tabs[i] = activeTabStyle.Render(k.Label())
		} else {
			tabs[i] = tabStyle.Render(k.Label())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderColumns() string {
	picked := make(map[string]int, len(m.sel.Columns))
	for i, c := range m.sel.Columns {
		picked[c] = i + 1
	}

	var b strings.Builder
	for i, col := range m.table.Columns {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if n, ok := picked[col.Name]; ok {
			box = fmt.Sprintf("[%d]", n)
		}
		group := ""
		if m.sel.Test == stats.KindANOVA && col.Name == m.sel.GroupColumn {
			group = " (group)"
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s%s\n", pointer, box, col.Name, kindStyle.Render(string(col.Kind)), group))
	}
	return b.String()
}

func (m Model) renderResults() string {
	lines := make([]string, len(m.outcome.Report.Lines))
	for i, line := range m.outcome.Report.Lines {
		lines[i] = line.Text
	}
	if m.outcome.ComputeErr != nil {
		lines[len(lines)-1] = errorStyle.Render(lines[len(lines)-1])
	}

	style := resultsStyle
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}
