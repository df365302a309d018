// Package inferential runs the classical two-sample, k-sample and
// contingency tests. Each routine is stateless and delegates the numerics
// to go-moremath or gonum; no input is validated beforehand.
package inferential

import (
	stderrors "errors"
	"math"

	"statcompare/domain/stats"
	"statcompare/internal/errors"

	mstats "github.com/aclements/go-moremath/stats"
)

// TTest runs a two-sided independent two-sample t-test assuming equal
// variances. Degenerate samples follow the usual floating-point outcome
// instead of failing: NaN inputs, an empty sample or a single value on each
// side give NaN, and two constant samples give ±Inf with p = 0 when their
// means differ.
func TTest(a, b []float64) (stats.TestResult, error) {
	if hasNaN(a) || hasNaN(b) {
		return nanResult(stats.KindTTest), nil
	}
	res, err := mstats.TwoSampleTTest(mstats.Sample{Xs: a}, mstats.Sample{Xs: b}, mstats.LocationDiffers)
	switch {
	case stderrors.Is(err, mstats.ErrSampleSize):
		return nanResult(stats.KindTTest), nil
	case stderrors.Is(err, mstats.ErrZeroVariance):
		return constantSamples(a, b), nil
	case err != nil:
		return nanResult(stats.KindTTest), errors.ComputationError("t-test failed", err)
	}
	return stats.TestResult{
		Kind:      stats.KindTTest,
		Statistic: res.T,
		PValue:    studentTwoSided(res.T, res.DoF),
		DoF:       res.DoF,
	}, nil
}

// constantSamples handles two samples without spread: the pooled variance
// is zero, so the statistic is the sign of the mean difference over zero.
func constantSamples(a, b []float64) stats.TestResult {
	dof := float64(len(a) + len(b) - 2)
	diff := mstats.Mean(a) - mstats.Mean(b)
	if dof <= 0 || diff == 0 {
		return nanResult(stats.KindTTest)
	}
	return stats.TestResult{
		Kind:      stats.KindTTest,
		Statistic: math.Copysign(math.Inf(1), diff),
		PValue:    0,
		DoF:       dof,
	}
}

func nanResult(kind stats.TestKind) stats.TestResult {
	return stats.TestResult{Kind: kind, Statistic: math.NaN(), PValue: math.NaN(), DoF: math.NaN()}
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
