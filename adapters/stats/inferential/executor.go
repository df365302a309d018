package inferential

import (
	"statcompare/domain/stats"
	"statcompare/ports"
)

// Executor exposes the package functions through ports.TestExecutorPort
type Executor struct{}

var _ ports.TestExecutorPort = Executor{}

func (Executor) TTest(a, b []float64) (stats.TestResult, error) { return TTest(a, b) }

func (Executor) ANOVA(groups stats.GroupData) (stats.TestResult, error) { return ANOVA(groups) }

func (Executor) ChiSquare(table stats.ContingencyTable) (stats.TestResult, error) {
	return ChiSquare(table)
}
