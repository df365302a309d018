package ports

import (
	"time"

	"statcompare/domain/stats"
)

// Evaluation outcomes reported to an EvaluationRecorder
const (
	OutcomeOK               = "ok"
	OutcomeIncomplete       = "incomplete"
	OutcomeParseError       = "parse_error"
	OutcomeComputationError = "computation_error"
)

// EvaluationRecorder observes every pipeline evaluation
type EvaluationRecorder interface {
	ObserveEvaluation(kind stats.TestKind, outcome string, elapsed time.Duration)
}
