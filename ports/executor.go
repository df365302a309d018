package ports

import (
	"statcompare/domain/stats"
)

// TestExecutorPort runs the three inferential tests on already-derived data.
// Implementations delegate to a statistics library and do not validate input.
type TestExecutorPort interface {
	TTest(a, b []float64) (stats.TestResult, error)
	ANOVA(groups stats.GroupData) (stats.TestResult, error)
	ChiSquare(table stats.ContingencyTable) (stats.TestResult, error)
}
