// Package report turns a test result into the fixed interpretation text shown
// below the column selectors.
package report

import (
	"math"
	"strings"

	"statcompare/domain/dataset"
	"statcompare/domain/stats"
)

// Significance cut-offs
const (
	strongThreshold = 0.01
	alphaThreshold  = 0.05
)

// LineKind distinguishes how a line is emphasised when rendered as Markdown
type LineKind int

const (
	LineHeader LineKind = iota
	LineValue
	LineMessage
	LineConclusion
	LineError
)

// Line is one printed statement of a report
type Line struct {
	Kind LineKind
	Text string
}

// Report is the ordered output of one evaluation
type Report struct {
	Kind  stats.TestKind
	Lines []Line
}

// GroupMean is the mean of the tested column within one group
type GroupMean struct {
	Label string
	Mean  float64
}

// Context carries the values printed alongside the result. Means are
// computed by the caller from the table, so rendering stays a pure function.
type Context struct {
	Columns     []string
	ColumnMeans map[string]float64
	GroupColumn string
	// GroupLabels are the distinct grouping values in order of first appearance.
	GroupLabels []string
	// GroupMeans follow GroupLabels order and skip groups without a key.
	GroupMeans []GroupMean
}

func (c Context) columnMean(name string) float64 {
	if m, ok := c.ColumnMeans[name]; ok {
		return m
	}
	return math.NaN()
}

// Render builds the report for a computed result
func Render(kind stats.TestKind, result stats.TestResult, ctx Context) Report {
	r := Report{Kind: kind}
	switch kind {
	case stats.KindTTest:
		renderTTest(&r, result, ctx)
	case stats.KindANOVA:
		renderANOVA(&r, result, ctx)
	case stats.KindChiSquare:
		renderChiSquare(&r, result)
	}
	return r
}

// RenderError builds the report for a test whose routine failed. The
// message is printed uninterpreted under the usual header.
func RenderError(kind stats.TestKind, err error) Report {
	r := Report{Kind: kind}
	r.add(LineHeader, header(kind))
	r.add(LineError, "Error: "+err.Error())
	return r
}

func renderTTest(r *Report, res stats.TestResult, ctx Context) {
	r.add(LineHeader, header(stats.KindTTest))
	r.add(LineValue, "T-Statistic: "+dataset.FormatFloat(res.Statistic))
	r.add(LineValue, "P-Value: "+dataset.FormatFloat(res.PValue))

	p := res.PValue
	switch {
	case p >= strongThreshold && p <= alphaThreshold:
		r.add(LineMessage, "P-value suggests a moderate level of significance.")
		r.addColumnMeans(ctx)
		r.add(LineConclusion, "Conclusion: There might be a significant difference between the groups.")
	case p < strongThreshold:
		r.add(LineMessage, "P-value suggests a strong level of significance.")
		r.addColumnMeans(ctx)
		r.add(LineConclusion, "Conclusion: There is a significant difference between the groups.")
	default:
		// NaN lands here too
		r.add(LineMessage, "P-value suggests no significant difference between the groups.")
	}
}

func (r *Report) addColumnMeans(ctx Context) {
	for _, col := range ctx.Columns {
		r.add(LineValue, "Mean of "+col+" : "+dataset.FormatFloat(ctx.columnMean(col)))
	}
}

func renderANOVA(r *Report, res stats.TestResult, ctx Context) {
	r.add(LineHeader, header(stats.KindANOVA))
	r.add(LineValue, "F-Statistic: "+dataset.FormatFloat(res.Statistic))
	r.add(LineValue, "P-Value: "+dataset.FormatFloat(res.PValue))

	if !(res.PValue < alphaThreshold) {
		r.add(LineMessage, "P-value suggests no significant difference between groups.")
		return
	}

	r.add(LineMessage, "P-value suggests a significant difference between groups.")
	// The i-th selected column is labelled with the i-th distinct grouping
	// value; the printed mean is over the whole column.
	for i, col := range ctx.Columns {
		if i >= len(ctx.GroupLabels) {
			break
		}
		r.add(LineValue, "Mean of "+col+" for group "+ctx.GroupLabels[i]+" : "+dataset.FormatFloat(ctx.columnMean(col)))
	}
	if len(ctx.Columns) > 0 {
		tested := ctx.Columns[0]
		for _, g := range ctx.GroupMeans {
			r.add(LineValue, "Mean of "+tested+" within group "+g.Label+" : "+dataset.FormatFloat(g.Mean))
		}
	}
	r.add(LineConclusion, "Conclusion: There is a significant difference between at least one pair of groups.")
}

func renderChiSquare(r *Report, res stats.TestResult) {
	r.add(LineHeader, header(stats.KindChiSquare))
	r.add(LineValue, "Chi-Square Statistic: "+dataset.FormatFloat(res.Statistic))
	r.add(LineValue, "P-Value: "+dataset.FormatFloat(res.PValue))

	if res.PValue < alphaThreshold {
		r.add(LineMessage, "P-value suggests a significant association between the variables.")
		r.add(LineConclusion, "Conclusion: There is evidence of a relationship between the categorical variables.")
		return
	}
	r.add(LineMessage, "P-value suggests no significant association between the variables.")
}

func header(kind stats.TestKind) string {
	switch kind {
	case stats.KindTTest:
		return "T-Test Results:"
	case stats.KindANOVA:
		return "ANOVA Results:"
	case stats.KindChiSquare:
		return "Chi-Square Test Results:"
	default:
		return "Results:"
	}
}

func (r *Report) add(kind LineKind, text string) {
	r.Lines = append(r.Lines, Line{Kind: kind, Text: text})
}

// Empty reports whether nothing was rendered
func (r Report) Empty() bool {
	return len(r.Lines) == 0
}

// Text joins the lines with newlines
func (r Report) Text() string {
	texts := make([]string, len(r.Lines))
	for i, line := range r.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// Contains reports whether any line equals text
func (r Report) Contains(text string) bool {
	for _, line := range r.Lines {
		if line.Text == text {
			return true
		}
	}
	return false
}
