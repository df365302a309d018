package inferential

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Tail probabilities are taken from the regularized incomplete beta
// function directly. 1-CDF cancels to zero long before the true tail does.

// studentTwoSided is P(|T| >= |t|) for Student's t with dof degrees of freedom
func studentTwoSided(t, dof float64) float64 {
	switch {
	case math.IsNaN(t) || math.IsNaN(dof) || dof <= 0:
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}
	return mathext.RegIncBeta(dof/2, 0.5, dof/(dof+t*t))
}

// fSurvival is P(F >= f) for the F distribution with (d1, d2) degrees of freedom
func fSurvival(f, d1, d2 float64) float64 {
	switch {
	case math.IsNaN(f) || d1 <= 0 || d2 <= 0:
		return math.NaN()
	case math.IsInf(f, 1):
		return 0
	case f <= 0:
		return 1
	}
	return mathext.RegIncBeta(d2/2, d1/2, d2/(d2+d1*f))
}
