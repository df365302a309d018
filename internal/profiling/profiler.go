// Package profiling summarises the columns of a loaded table.
package profiling

import (
	"math"

	"statcompare/domain/dataset"

	"github.com/montanaflynn/stats"
)

// NumericSummary holds the descriptive statistics of a numeric column's
// present values.
type NumericSummary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// ColumnProfile describes one column
type ColumnProfile struct {
	Name    string
	Kind    dataset.ColumnKind
	Count   int
	Missing int
	Unique  int
	// Summary is nil for text columns and all-missing numeric columns.
	Summary *NumericSummary
}

// ProfileTable profiles every column in file order
func ProfileTable(table *dataset.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, len(table.Columns))
	for i := range table.Columns {
		profiles[i] = ProfileColumn(&table.Columns[i])
	}
	return profiles
}

// ProfileColumn counts missing and distinct cells and, for numeric columns,
// summarises the present values.
func ProfileColumn(col *dataset.Column) ColumnProfile {
	p := ColumnProfile{Name: col.Name, Kind: col.Kind, Count: len(col.Cells)}

	distinct := make(map[string]bool)
	var present []float64
	for i := range col.Cells {
		if col.Missing(i) {
			p.Missing++
			continue
		}
		distinct[col.Label(i)] = true
		if col.Kind == dataset.KindNumeric {
			present = append(present, col.Numbers[i])
		}
	}
	p.Unique = len(distinct)

	if len(present) > 0 {
		p.Summary = summarize(present)
	}
	return p
}

func summarize(data []float64) *NumericSummary {
	mean, _ := stats.Mean(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)

	// sample standard deviation is undefined for a single value
	stdDev := math.NaN()
	if len(data) > 1 {
		stdDev, _ = stats.StandardDeviationSample(data)
	}

	return &NumericSummary{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
	}
}
