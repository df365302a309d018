package dataset

import (
	"fmt"
	"math"
	"sort"

	"statcompare/domain/stats"
	"statcompare/internal/errors"
)

// ColumnKind is the scalar type inferred for a column
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindText    ColumnKind = "text"
)

// MissingLabel is how a missing cell is labeled in unique-value listings
const MissingLabel = "nan"

// Column is one named column of a Table
type Column struct {
	Name string
	Kind ColumnKind
	// Cells holds the trimmed raw text of every row.
	Cells []string
	// Numbers mirrors Cells for numeric columns, NaN where missing; nil for text.
	Numbers []float64
	// integral is true when every value is present and has no fractional part.
	integral bool
}

// NewNumericColumn builds a numeric column from raw cells and their parsed values
func NewNumericColumn(name string, cells []string, numbers []float64) Column {
	integral := true
	for _, v := range numbers {
		if math.IsNaN(v) || v != math.Trunc(v) || math.IsInf(v, 0) {
			integral = false
			break
		}
	}
	return Column{Name: name, Kind: KindNumeric, Cells: cells, Numbers: numbers, integral: integral}
}

// NewTextColumn builds a text column from raw cells
func NewTextColumn(name string, cells []string) Column {
	return Column{Name: name, Kind: KindText, Cells: cells}
}

// Missing reports whether row i holds no value
func (c *Column) Missing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Numbers[i])
	}
	return IsMissing(c.Cells[i])
}

// Label renders row i the way it is shown in unique listings and table labels
func (c *Column) Label(i int) string {
	if c.Missing(i) {
		return MissingLabel
	}
	if c.Kind == KindNumeric {
		if c.integral {
			return fmt.Sprintf("%d", int64(c.Numbers[i]))
		}
		return FormatFloat(c.Numbers[i])
	}
	return c.Cells[i]
}

// Table is an in-memory, column-ordered view of an uploaded file.
// It lives for a single evaluation.
type Table struct {
	Columns []Column
	rows    int
	index   map[string]int
}

// NewTable assembles a table; all columns must have the same length
func NewTable(columns []Column) (*Table, error) {
	t := &Table{Columns: columns, index: make(map[string]int, len(columns))}
	for i, col := range columns {
		if i == 0 {
			t.rows = len(col.Cells)
		} else if len(col.Cells) != t.rows {
			return nil, errors.InternalError(fmt.Sprintf("column %q has %d rows, expected %d", col.Name, len(col.Cells), t.rows))
		}
		if _, dup := t.index[col.Name]; dup {
			return nil, errors.InvalidInput(fmt.Sprintf("duplicate column name %q", col.Name))
		}
		t.index[col.Name] = i
	}
	return t, nil
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return t.rows
}

// ColumnNames returns column names in file order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether name is a column of t
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("column %q", name))
	}
	return &t.Columns[i], nil
}

// Row returns the raw cells of row i in column order
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j := range t.Columns {
		row[j] = t.Columns[j].Cells[i]
	}
	return row
}

// NumericValues returns a numeric column's values, NaN where missing
func (t *Table) NumericValues(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind != KindNumeric {
		return nil, errors.ComputationError(fmt.Sprintf("column %q is not numeric", name), nil)
	}
	out := make([]float64, len(col.Numbers))
	copy(out, col.Numbers)
	return out, nil
}

// Unique returns the distinct labels of a column in order of first appearance,
// including the missing label when a cell is empty.
func (t *Table) Unique(name string) ([]string, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < t.rows; i++ {
		label := col.Label(i)
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	return out, nil
}

// GroupBy partitions valueCol by the values of groupCol. Groups come out in
// sorted key order and rows with a missing key are dropped.
func (t *Table) GroupBy(groupCol, valueCol string) (stats.GroupData, error) {
	keys, err := t.Column(groupCol)
	if err != nil {
		return nil, err
	}
	values, err := t.NumericValues(valueCol)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*stats.Group)
	var order []int
	for i := 0; i < t.rows; i++ {
		if keys.Missing(i) {
			continue
		}
		label := keys.Label(i)
		g, ok := byKey[label]
		if !ok {
			g = &stats.Group{Label: label}
			byKey[label] = g
			order = append(order, i)
		}
		g.Values = append(g.Values, values[i])
	}

	sortRowsByKey(keys, order)
	out := make(stats.GroupData, 0, len(order))
	for _, i := range order {
		out = append(out, *byKey[keys.Label(i)])
	}
	return out, nil
}

// CrossTab counts joint occurrences of two columns. Labels are the sorted
// distinct values observed; rows missing either value are dropped.
func (t *Table) CrossTab(rowCol, colCol string) (stats.ContingencyTable, error) {
	rows, err := t.Column(rowCol)
	if err != nil {
		return stats.ContingencyTable{}, err
	}
	cols, err := t.Column(colCol)
	if err != nil {
		return stats.ContingencyTable{}, err
	}

	var kept []int
	for i := 0; i < t.rows; i++ {
		if !rows.Missing(i) && !cols.Missing(i) {
			kept = append(kept, i)
		}
	}

	rowLabels, rowIndex := sortedLabels(rows, kept)
	colLabels, colIndex := sortedLabels(cols, kept)

	counts := make([][]float64, len(rowLabels))
	for r := range counts {
		counts[r] = make([]float64, len(colLabels))
	}
	for _, i := range kept {
		counts[rowIndex[rows.Label(i)]][colIndex[cols.Label(i)]]++
	}

	return stats.ContingencyTable{
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Counts:    counts,
	}, nil
}

func sortedLabels(col *Column, rows []int) ([]string, map[string]int) {
	seen := make(map[string]bool)
	var firsts []int
	for _, i := range rows {
		label := col.Label(i)
		if !seen[label] {
			seen[label] = true
			firsts = append(firsts, i)
		}
	}
	sortRowsByKey(col, firsts)

	labels := make([]string, len(firsts))
	index := make(map[string]int, len(firsts))
	for j, i := range firsts {
		labels[j] = col.Label(i)
		index[labels[j]] = j
	}
	return labels, index
}

// sortRowsByKey orders row indexes by the column's value: numerically for
// numeric columns, lexically otherwise.
func sortRowsByKey(col *Column, rows []int) {
	sort.SliceStable(rows, func(a, b int) bool {
		if col.Kind == KindNumeric {
			return col.Numbers[rows[a]] < col.Numbers[rows[b]]
		}
		return col.Cells[rows[a]] < col.Cells[rows[b]]
	})
}
