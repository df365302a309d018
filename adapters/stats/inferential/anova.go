package inferential

import (
	"statcompare/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// ANOVA runs a one-way analysis of variance across the groups. Fewer than
// two groups, or no within-group degrees of freedom, give a NaN result.
func ANOVA(groups stats.GroupData) (stats.TestResult, error) {
	samples := groups.Samples()
	k := len(samples)

	var all []float64
	for _, s := range samples {
		all = append(all, s...)
	}
	n := len(all)

	dfBetween := float64(k - 1)
	dfWithin := float64(n - k)
	if k < 2 || dfWithin <= 0 {
		return nanResult(stats.KindANOVA), nil
	}

	grandMean := stat.Mean(all, nil)
	var ssBetween, ssWithin float64
	for _, s := range samples {
		m := stat.Mean(s, nil)
		d := m - grandMean
		ssBetween += float64(len(s)) * d * d
		for _, x := range s {
			e := x - m
			ssWithin += e * e
		}
	}

	f := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	return stats.TestResult{
		Kind:      stats.KindANOVA,
		Statistic: f,
		PValue:    fSurvival(f, dfBetween, dfWithin),
		DoF:       dfBetween,
	}, nil
}
