package app

import (
	"context"
	"testing"
	"time"

	"statcompare/adapters/excel"
	"statcompare/adapters/stats/inferential"
	"statcompare/domain/stats"
	"statcompare/internal/errors"
	"statcompare/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvaluation struct {
	kind    stats.TestKind
	outcome string
}

type fakeRecorder struct {
	seen []recordedEvaluation
}

func (f *fakeRecorder) ObserveEvaluation(kind stats.TestKind, outcome string, _ time.Duration) {
	f.seen = append(f.seen, recordedEvaluation{kind, outcome})
}

func newTestService() (*ComparisonService, *fakeRecorder) {
	rec := &fakeRecorder{}
	return NewComparisonService(excel.NewUploadReader(nil), inferential.Executor{}, rec, nil), rec
}

func csvUpload(body string) Upload {
	return Upload{Filename: "data.csv", Data: []byte(body)}
}

func TestEvaluateTTestNoDifference(t *testing.T) {
	svc, rec := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("A,B\n1,2\n2,4\n3,6\n4,8\n5,10\n"),
		stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "B"}})
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.Less(t, out.Result.Statistic, 0.0)
	assert.Greater(t, out.Result.PValue, 0.05)
	assert.True(t, out.Report.Contains("P-value suggests no significant difference between the groups."))
	assert.Equal(t, []recordedEvaluation{{stats.KindTTest, ports.OutcomeOK}}, rec.seen)
}

func TestEvaluateTTestPrintsMeansWhenSignificant(t *testing.T) {
	svc, _ := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("A,B\n2,6\n1,5\n3,7\n4,9\n"),
		stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "B"}})
	require.NoError(t, err)

	assert.True(t, out.Report.Contains("P-value suggests a strong level of significance."))
	assert.True(t, out.Report.Contains("Mean of A : 2.5"))
	assert.True(t, out.Report.Contains("Mean of B : 6.75"))
}

func TestEvaluateANOVAGroupsFirstColumn(t *testing.T) {
	svc, _ := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("G,V\nx,1\nx,2\ny,10\ny,11\n"),
		stats.Selection{Test: stats.KindANOVA, GroupColumn: "G", Columns: []string{"V"}})
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.InDelta(t, 162.0, out.Result.Statistic, 1e-9)
	assert.Less(t, out.Result.PValue, 0.05)
	assert.True(t, out.Report.Contains("P-value suggests a significant difference between groups."))
	assert.True(t, out.Report.Contains("Mean of V for group x : 6.0"))
	assert.True(t, out.Report.Contains("Mean of V within group x : 1.5"))
	assert.True(t, out.Report.Contains("Mean of V within group y : 10.5"))
}

func TestEvaluateANOVADefaultsGroupColumn(t *testing.T) {
	svc, _ := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("G,V\nx,1\nx,2\ny,10\ny,11\n"),
		stats.Selection{Test: stats.KindANOVA, Columns: []string{"V"}})
	require.NoError(t, err)
	assert.Equal(t, "G", out.Selection.GroupColumn)
	assert.True(t, out.Ran())
}

func TestEvaluateChiSquareAssociation(t *testing.T) {
	body := "P,Q\n"
	for i := 0; i < 10; i++ {
		body += "a,u\n"
	}
	for i := 0; i < 10; i++ {
		body += "b,v\n"
	}

	svc, _ := newTestService()
	out, err := svc.Evaluate(context.Background(), csvUpload(body),
		stats.Selection{Test: stats.KindChiSquare, Columns: []string{"P", "Q"}})
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.Less(t, out.Result.PValue, 0.01)
	assert.Equal(t, 1.0, out.Result.DoF)
	assert.True(t, out.Report.Contains("P-value suggests a significant association between the variables."))
}

func TestEvaluateIncompleteSelectionRunsNothing(t *testing.T) {
	svc, rec := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("A,B,C\n1,2,3\n4,5,6\n"),
		stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "B", "C"}})
	require.NoError(t, err)

	assert.Nil(t, out.Result)
	assert.False(t, out.Ran())
	assert.Equal(t, 2, out.Table.NumRows())
	assert.Equal(t, ports.OutcomeIncomplete, rec.seen[0].outcome)
}

func TestEvaluateTextColumnReportsError(t *testing.T) {
	svc, rec := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("A,L\n1,x\n2,y\n"),
		stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "L"}})
	require.NoError(t, err)

	require.Error(t, out.ComputeErr)
	assert.Nil(t, out.Result)
	assert.Equal(t, `T-Test Results:
Error: column "L" is not numeric`, out.Report.Text())
	assert.Equal(t, ports.OutcomeComputationError, rec.seen[0].outcome)
}

func TestEvaluateConstantColumnsAreStronglySignificant(t *testing.T) {
	svc, rec := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("A,B\n3,5\n3,5\n3,5\n"),
		stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "B"}})
	require.NoError(t, err)
	require.NoError(t, out.ComputeErr)

	assert.True(t, out.Report.Contains("T-Statistic: -inf"))
	assert.True(t, out.Report.Contains("P-Value: 0.0"))
	assert.True(t, out.Report.Contains("P-value suggests a strong level of significance."))
	assert.Equal(t, ports.OutcomeOK, rec.seen[0].outcome)
}

func TestEvaluateTinyPValueIsPrinted(t *testing.T) {
	svc, _ := newTestService()
	out, err := svc.Evaluate(context.Background(),
		csvUpload("A,B\n1,1000\n2,1001\n3,1002\n4,1003\n5,1004\n"),
		stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "B"}})
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.Greater(t, out.Result.PValue, 0.0)
	assert.NotEqual(t, "P-Value: 0.0", out.Report.Lines[2].Text)
	assert.Regexp(t, `^P-Value: 1\.12896787\d*e-21$`, out.Report.Lines[2].Text)
}

func TestEvaluateParseErrorIsReturned(t *testing.T) {
	svc, rec := newTestService()
	_, err := svc.Evaluate(context.Background(), csvUpload(""), stats.Selection{Test: stats.KindTTest})
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
	assert.Equal(t, ports.OutcomeParseError, rec.seen[0].outcome)
}

func TestEvaluateIsStateless(t *testing.T) {
	svc, _ := newTestService()
	upload := csvUpload("A,B\n2,6\n1,5\n3,7\n4,9\n")
	sel := stats.Selection{Test: stats.KindTTest, Columns: []string{"A", "B"}}

	first, err := svc.Evaluate(context.Background(), upload, sel)
	require.NoError(t, err)
	second, err := svc.Evaluate(context.Background(), upload, sel)
	require.NoError(t, err)
	assert.Equal(t, first.Report.Text(), second.Report.Text())
}

func TestSanitizeSelection(t *testing.T) {
	svc, _ := newTestService()
	table, err := svc.Load(csvUpload("A,B,C\n1,2,3\n"))
	require.NoError(t, err)

	sel := SanitizeSelection(table, stats.Selection{
		Test:        stats.KindChiSquare,
		Columns:     []string{"C", "Z", "C", "A"},
		GroupColumn: "B",
	})
	assert.Equal(t, []string{"C", "A"}, sel.Columns)
	assert.Empty(t, sel.GroupColumn)

	sel = SanitizeSelection(table, stats.Selection{Test: stats.KindANOVA, GroupColumn: "missing"})
	assert.Equal(t, "A", sel.GroupColumn)

	sel = SanitizeSelection(table, stats.Selection{Test: "bogus"})
	assert.Equal(t, stats.KindTTest, sel.Test)
}
