package ui

import (
	"fmt"
	"html/template"

	"statcompare/app"
	"statcompare/domain/dataset"
	"statcompare/domain/stats"
	"statcompare/internal/profiling"
)

type columnView struct {
	Name     string
	Kind     dataset.ColumnKind
	Summary  string
	Selected bool
	Grouping bool
}

type cellView struct {
	Text    string
	Missing bool
}

type testOption struct {
	Value    stats.TestKind
	Label    string
	Selected bool
}

// workspaceView backs the swapped workspace fragment
type workspaceView struct {
	Error      string
	HasTable   bool
	Columns    []columnView
	Picked     []string
	Rows       [][]cellView
	Tests      []testOption
	Prompt     string
	ShowGroup  bool
	Ran        bool
	ReportHTML template.HTML
}

func testOptions(selected stats.TestKind) []testOption {
	opts := make([]testOption, len(stats.AllKinds))
	for i, k := range stats.AllKinds {
		opts[i] = testOption{Value: k, Label: k.Label(), Selected: k == selected}
	}
	return opts
}

func emptyView() workspaceView {
	return workspaceView{Tests: testOptions(stats.KindTTest)}
}

func errorView(err error) workspaceView {
	v := emptyView()
	v.Error = err.Error()
	return v
}

func outcomeView(out *app.Outcome) workspaceView {
	sel := out.Selection
	v := workspaceView{
		HasTable:  true,
		Tests:     testOptions(sel.Test),
		Prompt:    sel.Test.Prompt(),
		ShowGroup: sel.Test == stats.KindANOVA,
		Ran:       out.Ran(),
		Picked:    sel.Columns,
	}

	picked := make(map[string]bool, len(sel.Columns))
	for _, c := range sel.Columns {
		picked[c] = true
	}
	table := out.Table
	for _, p := range profiling.ProfileTable(table) {
		v.Columns = append(v.Columns, columnView{
			Name:     p.Name,
			Kind:     p.Kind,
			Summary:  describe(p),
			Selected: picked[p.Name],
			Grouping: p.Name == sel.GroupColumn,
		})
	}

	v.Rows = make([][]cellView, table.NumRows())
	for i := range v.Rows {
		row := make([]cellView, len(table.Columns))
		for j := range table.Columns {
			col := &table.Columns[j]
			if col.Missing(i) {
				row[j] = cellView{Text: dataset.MissingLabel, Missing: true}
			} else {
				row[j] = cellView{Text: col.Cells[i]}
			}
		}
		v.Rows[i] = row
	}

	if v.Ran {
		v.ReportHTML = out.Report.HTML()
	}
	return v
}

// describe is the header tooltip of a column
func describe(p profiling.ColumnProfile) string {
	text := fmt.Sprintf("%d missing, %d unique", p.Missing, p.Unique)
	if p.Summary != nil {
		text += fmt.Sprintf(", mean %s, sd %s", dataset.FormatFloat(p.Summary.Mean), dataset.FormatFloat(p.Summary.StdDev))
	}
	return text
}
