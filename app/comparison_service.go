package app

import (
	"bytes"
	"context"
	"math"
	"time"

	"statcompare/domain/dataset"
	"statcompare/domain/stats"
	"statcompare/internal"
	"statcompare/internal/report"
	"statcompare/ports"

	mstats "github.com/montanaflynn/stats"
)

// Upload is the raw file as submitted
type Upload struct {
	Filename string
	Data     []byte
}

// Outcome is everything a view needs after one evaluation. Result is nil
// and Report empty while the selection is incomplete.
type Outcome struct {
	Table     *dataset.Table
	Selection stats.Selection
	Result    *stats.TestResult
	Report    report.Report
	// ComputeErr is set when the test routine failed; Report then carries it.
	ComputeErr error
}

// Ran reports whether a test was executed
func (o *Outcome) Ran() bool {
	return !o.Report.Empty()
}

// ComparisonService recomputes table, result and report from scratch on
// every call. It holds no per-upload state.
type ComparisonService struct {
	reader   ports.TableReaderPort
	executor ports.TestExecutorPort
	recorder ports.EvaluationRecorder
	logger   *internal.Logger
}

// NewComparisonService wires the pipeline; recorder and logger may be nil
func NewComparisonService(reader ports.TableReaderPort, executor ports.TestExecutorPort, recorder ports.EvaluationRecorder, logger *internal.Logger) *ComparisonService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &ComparisonService{
		reader:   reader,
		executor: executor,
		recorder: recorder,
		logger:   logger,
	}
}

// Load parses an upload without running any test
func (s *ComparisonService) Load(upload Upload) (*dataset.Table, error) {
	return s.reader.ReadUpload(upload.Filename, bytes.NewReader(upload.Data))
}

// Evaluate loads the upload, normalises the selection against its columns
// and, when the selection is complete, runs and renders the test. A parse
// failure is the only returned error; a failing test routine is reported
// through Outcome.Report.
func (s *ComparisonService) Evaluate(ctx context.Context, upload Upload, sel stats.Selection) (*Outcome, error) {
	start := time.Now()

	table, err := s.Load(upload)
	if err != nil {
		s.observe(sel.Test, ports.OutcomeParseError, start)
		s.logger.Warn("[ComparisonService] failed to load %q: %v", upload.Filename, err)
		return nil, err
	}
	return s.EvaluateTable(ctx, table, sel), nil
}

// EvaluateTable runs the selection against an already loaded table
func (s *ComparisonService) EvaluateTable(ctx context.Context, table *dataset.Table, sel stats.Selection) *Outcome {
	start := time.Now()
	sel = SanitizeSelection(table, sel)
	out := &Outcome{Table: table, Selection: sel}

	if !sel.Complete() || ctx.Err() != nil {
		s.observe(sel.Test, ports.OutcomeIncomplete, start)
		return out
	}

	res, err := s.run(table, sel)
	if err != nil {
		out.ComputeErr = err
		out.Report = report.RenderError(sel.Test, err)
		s.observe(sel.Test, ports.OutcomeComputationError, start)
		s.logger.Debug("[ComparisonService] %s on %v failed: %v", sel.Test, sel.Columns, err)
		return out
	}

	out.Result = &res
	out.Report = report.Render(sel.Test, res, buildContext(table, sel))
	s.observe(sel.Test, ports.OutcomeOK, start)
	s.logger.Debug("[ComparisonService] %s on %v: statistic=%v p=%v", sel.Test, sel.Columns, res.Statistic, res.PValue)
	return out
}

// run derives the test input from the table. Only the first selected column
// takes part in an ANOVA.
func (s *ComparisonService) run(table *dataset.Table, sel stats.Selection) (stats.TestResult, error) {
	switch sel.Test {
	case stats.KindTTest:
		a, err := table.NumericValues(sel.Columns[0])
		if err != nil {
			return stats.TestResult{}, err
		}
		b, err := table.NumericValues(sel.Columns[1])
		if err != nil {
			return stats.TestResult{}, err
		}
		return s.executor.TTest(a, b)
	case stats.KindANOVA:
		groups, err := table.GroupBy(sel.GroupColumn, sel.Columns[0])
		if err != nil {
			return stats.TestResult{}, err
		}
		return s.executor.ANOVA(groups)
	default:
		ct, err := table.CrossTab(sel.Columns[0], sel.Columns[1])
		if err != nil {
			return stats.TestResult{}, err
		}
		return s.executor.ChiSquare(ct)
	}
}

func (s *ComparisonService) observe(kind stats.TestKind, outcome string, start time.Time) {
	if s.recorder != nil {
		s.recorder.ObserveEvaluation(kind, outcome, time.Since(start))
	}
}

// SanitizeSelection drops unknown and repeated columns, keeping the given
// order, and points an unset or unknown grouping column at the first column
// of the table.
func SanitizeSelection(table *dataset.Table, sel stats.Selection) stats.Selection {
	if !sel.Test.Valid() {
		sel.Test = stats.KindTTest
	}

	seen := make(map[string]bool, len(sel.Columns))
	columns := make([]string, 0, len(sel.Columns))
	for _, c := range sel.Columns {
		if table.HasColumn(c) && !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}
	sel.Columns = columns

	if sel.Test == stats.KindANOVA {
		if !table.HasColumn(sel.GroupColumn) {
			sel.GroupColumn = ""
			if names := table.ColumnNames(); len(names) > 0 {
				sel.GroupColumn = names[0]
			}
		}
	} else {
		sel.GroupColumn = ""
	}
	return sel
}

// buildContext gathers the means printed next to a result
func buildContext(table *dataset.Table, sel stats.Selection) report.Context {
	ctx := report.Context{
		Columns:     sel.Columns,
		ColumnMeans: make(map[string]float64, len(sel.Columns)),
		GroupColumn: sel.GroupColumn,
	}
	for _, c := range sel.Columns {
		ctx.ColumnMeans[c] = columnMean(table, c)
	}

	if sel.Test != stats.KindANOVA {
		return ctx
	}
	labels, err := table.Unique(sel.GroupColumn)
	if err != nil {
		return ctx
	}
	ctx.GroupLabels = labels

	groups, err := table.GroupBy(sel.GroupColumn, sel.Columns[0])
	if err != nil {
		return ctx
	}
	byLabel := make(map[string][]float64, len(groups))
	for _, g := range groups {
		byLabel[g.Label] = g.Values
	}
	for _, label := range labels {
		if values, ok := byLabel[label]; ok {
			ctx.GroupMeans = append(ctx.GroupMeans, report.GroupMean{Label: label, Mean: mean(values)})
		}
	}
	return ctx
}

// columnMean skips missing cells; a text column has no mean
func columnMean(table *dataset.Table, name string) float64 {
	values, err := table.NumericValues(name)
	if err != nil {
		return math.NaN()
	}
	return mean(values)
}

func mean(values []float64) float64 {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	m, err := mstats.Mean(present)
	if err != nil {
		return math.NaN()
	}
	return m
}
