package excel

import (
	"math"
	"strconv"
	"strings"

	"statcompare/domain/dataset"
)

// TypeAnalysis summarises how the cells of one column parse
type TypeAnalysis struct {
	TotalCount   int
	MissingCount int
	NumericCount int
}

// Numeric reports whether every present cell parsed as a number
func (a TypeAnalysis) Numeric() bool {
	return a.NumericCount == a.TotalCount-a.MissingCount
}

// analyzeCells counts missing and numeric cells, returning the parsed values
func analyzeCells(cells []string) (TypeAnalysis, []float64) {
	analysis := TypeAnalysis{TotalCount: len(cells)}
	numbers := make([]float64, len(cells))
	for i, cell := range cells {
		if dataset.IsMissing(cell) {
			analysis.MissingCount++
			numbers[i] = math.NaN()
			continue
		}
		if v, ok := tryParseNumeric(cell); ok {
			analysis.NumericCount++
			numbers[i] = v
		}
	}
	return analysis, numbers
}

// tryParseNumeric accepts plain decimal or scientific notation only
func tryParseNumeric(cell string) (float64, bool) {
	clean := strings.TrimSpace(cell)
	if clean == "" || strings.ContainsAny(clean, "_xXpP") {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// inferColumn types a column as numeric when no present cell resists parsing.
// An all-missing column is numeric.
func inferColumn(name string, cells []string) dataset.Column {
	analysis, numbers := analyzeCells(cells)
	if analysis.Numeric() {
		return dataset.NewNumericColumn(name, cells, numbers)
	}
	return dataset.NewTextColumn(name, cells)
}
