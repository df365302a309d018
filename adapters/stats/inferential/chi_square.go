package inferential

import (
	"fmt"
	"math"

	"statcompare/domain/stats"
	"statcompare/internal/errors"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// yatesLimit caps how far each observed count moves toward its expectation.
const yatesLimit = 0.5

// ChiSquare runs Pearson's chi-square test of independence on a
// contingency table, applying the Yates continuity correction when the
// table has one degree of freedom. The expected-frequency table and the
// degrees of freedom are returned alongside.
func ChiSquare(table stats.ContingencyTable) (stats.TestResult, error) {
	observed := table.Counts
	rows := len(observed)
	if rows == 0 || len(observed[0]) == 0 {
		return nanResult(stats.KindChiSquare), errors.ComputationError("chi-square test failed", fmt.Errorf("no data; observed has size 0"))
	}
	cols := len(observed[0])

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	var total float64
	for i, row := range observed {
		for j, v := range row {
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}

	expected := make([][]float64, rows)
	for i := range expected {
		expected[i] = make([]float64, cols)
		for j := range expected[i] {
			expected[i][j] = rowSums[i] * colSums[j] / total
			if expected[i][j] == 0 {
				return nanResult(stats.KindChiSquare), errors.ComputationError("chi-square test failed",
					fmt.Errorf("the internally computed table of expected frequencies has a zero element at (%d, %d)", i, j))
			}
		}
	}

	dof := float64((rows - 1) * (cols - 1))
	if dof == 0 {
		return stats.TestResult{Kind: stats.KindChiSquare, Statistic: 0, PValue: 1, DoF: 0, Expected: expected}, nil
	}

	obs := make([]float64, 0, rows*cols)
	exp := make([]float64, 0, rows*cols)
	for i := range observed {
		for j := range observed[i] {
			o, e := observed[i][j], expected[i][j]
			if dof == 1 {
				o = yatesAdjust(o, e)
			}
			obs = append(obs, o)
			exp = append(exp, e)
		}
	}

	chi2 := stat.ChiSquare(obs, exp)
	return stats.TestResult{
		Kind:      stats.KindChiSquare,
		Statistic: chi2,
		PValue:    distuv.ChiSquared{K: dof}.Survival(chi2),
		DoF:       dof,
		Expected:  expected,
	}, nil
}

// yatesAdjust moves o toward e by at most half a count
func yatesAdjust(o, e float64) float64 {
	diff := e - o
	step := math.Min(yatesLimit, math.Abs(diff))
	if diff < 0 {
		return o - step
	}
	return o + step
}
