package report

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"statcompare/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ttestContext() Context {
	return Context{
		Columns:     []string{"A", "B"},
		ColumnMeans: map[string]float64{"A": 3, "B": 6},
	}
}

func TestRenderTTestBands(t *testing.T) {
	cases := []struct {
		name string
		p    float64
		want []string
	}{
		{
			name: "no difference",
			p:    0.09434977284243774,
			want: []string{
				"T-Test Results:",
				"T-Statistic: -1.8973665961010275",
				"P-Value: 0.09434977284243774",
				"P-value suggests no significant difference between the groups.",
			},
		},
		{
			name: "moderate at upper edge",
			p:    0.05,
			want: []string{
				"T-Test Results:",
				"T-Statistic: -1.8973665961010275",
				"P-Value: 0.05",
				"P-value suggests a moderate level of significance.",
				"Mean of A : 3.0",
				"Mean of B : 6.0",
				"Conclusion: There might be a significant difference between the groups.",
			},
		},
		{
			name: "moderate at lower edge",
			p:    0.01,
			want: []string{
				"T-Test Results:",
				"T-Statistic: -1.8973665961010275",
				"P-Value: 0.01",
				"P-value suggests a moderate level of significance.",
				"Mean of A : 3.0",
				"Mean of B : 6.0",
				"Conclusion: There might be a significant difference between the groups.",
			},
		},
		{
			name: "strong",
			p:    0.007364059224211322,
			want: []string{
				"T-Test Results:",
				"T-Statistic: -1.8973665961010275",
				"P-Value: 0.007364059224211322",
				"P-value suggests a strong level of significance.",
				"Mean of A : 3.0",
				"Mean of B : 6.0",
				"Conclusion: There is a significant difference between the groups.",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := stats.TestResult{Kind: stats.KindTTest, Statistic: -1.8973665961010275, PValue: tc.p}
			r := Render(stats.KindTTest, res, ttestContext())
			assert.Equal(t, strings.Join(tc.want, "\n"), r.Text())
		})
	}
}

func TestRenderTTestNaNIsNotSignificant(t *testing.T) {
	res := stats.TestResult{Statistic: math.NaN(), PValue: math.NaN()}
	r := Render(stats.KindTTest, res, ttestContext())
	assert.Equal(t, "T-Statistic: nan", r.Lines[1].Text)
	assert.True(t, r.Contains("P-value suggests no significant difference between the groups."))
}

func TestRenderANOVASignificant(t *testing.T) {
	ctx := Context{
		Columns:     []string{"V"},
		ColumnMeans: map[string]float64{"V": 6},
		GroupColumn: "G",
		GroupLabels: []string{"x", "y"},
		GroupMeans:  []GroupMean{{Label: "x", Mean: 1.5}, {Label: "y", Mean: 10.5}},
	}
	r := Render(stats.KindANOVA, stats.TestResult{Statistic: 162, PValue: 0.006116265326381094}, ctx)

	assert.Equal(t, strings.Join([]string{
		"ANOVA Results:",
		"F-Statistic: 162.0",
		"P-Value: 0.006116265326381094",
		"P-value suggests a significant difference between groups.",
		"Mean of V for group x : 6.0",
		"Mean of V within group x : 1.5",
		"Mean of V within group y : 10.5",
		"Conclusion: There is a significant difference between at least one pair of groups.",
	}, "\n"), r.Text())
}

func TestRenderANOVAIndexAlignedLabelsStopAtLastGroup(t *testing.T) {
	ctx := Context{
		Columns:     []string{"V", "W", "Z"},
		ColumnMeans: map[string]float64{"V": 1, "W": 2},
		GroupLabels: []string{"a", "b"},
	}
	r := Render(stats.KindANOVA, stats.TestResult{Statistic: 9, PValue: 0.001}, ctx)

	assert.True(t, r.Contains("Mean of V for group a : 1.0"))
	assert.True(t, r.Contains("Mean of W for group b : 2.0"))
	for _, line := range r.Lines {
		assert.NotContains(t, line.Text, "Mean of Z")
	}
}

func TestRenderANOVANotSignificant(t *testing.T) {
	r := Render(stats.KindANOVA, stats.TestResult{Statistic: 0.5, PValue: 0.5}, Context{Columns: []string{"V"}})
	require.Len(t, r.Lines, 4)
	assert.Equal(t, "P-value suggests no significant difference between groups.", r.Lines[3].Text)
}

func TestRenderChiSquare(t *testing.T) {
	r := Render(stats.KindChiSquare, stats.TestResult{Statistic: 16.2, PValue: 5.699411623331843e-05}, Context{})
	assert.Equal(t, strings.Join([]string{
		"Chi-Square Test Results:",
		"Chi-Square Statistic: 16.2",
		"P-Value: 5.699411623331843e-05",
		"P-value suggests a significant association between the variables.",
		"Conclusion: There is evidence of a relationship between the categorical variables.",
	}, "\n"), r.Text())

	r = Render(stats.KindChiSquare, stats.TestResult{Statistic: 0, PValue: 1}, Context{})
	assert.Equal(t, "P-value suggests no significant association between the variables.", r.Lines[3].Text)
}

func TestRenderError(t *testing.T) {
	r := RenderError(stats.KindChiSquare, fmt.Errorf("observed has size 0"))
	assert.Equal(t, "Chi-Square Test Results:\nError: observed has size 0", r.Text())
}

func TestRenderIsIdempotent(t *testing.T) {
	res := stats.TestResult{Statistic: 3.25, PValue: 0.02}
	ctx := ttestContext()
	first := Render(stats.KindTTest, res, ctx)
	second := Render(stats.KindTTest, res, ctx)
	assert.Equal(t, first.Text(), second.Text())
	assert.Equal(t, first.Markdown(), second.Markdown())
	assert.Equal(t, first.HTML(), second.HTML())
}

func TestMarkdownAndHTML(t *testing.T) {
	ctx := Context{Columns: []string{"score_a", "score_b"}, ColumnMeans: map[string]float64{"score_a": 1, "score_b": 2}}
	r := Render(stats.KindTTest, stats.TestResult{Statistic: 4, PValue: 0.001}, ctx)

	md := r.Markdown()
	assert.True(t, strings.HasPrefix(md, "### T-Test Results:"))
	assert.Contains(t, md, `Mean of score\_a : 1.0`)
	assert.Contains(t, md, "**Conclusion: There is a significant difference between the groups.**")

	out := string(r.HTML())
	assert.Contains(t, out, "<h3>T-Test Results:</h3>")
	assert.Contains(t, out, "Mean of score_a : 1.0")
	assert.Contains(t, out, "<strong>Conclusion: There is a significant difference between the groups.</strong>")

	assert.Empty(t, Report{}.HTML())
}

func TestMarkdownFlattensLineBreaksInColumnNames(t *testing.T) {
	ctx := Context{
		Columns:     []string{"A\n===", "B\r\n---"},
		ColumnMeans: map[string]float64{"A\n===": 1, "B\r\n---": 2},
	}
	r := Render(stats.KindTTest, stats.TestResult{Statistic: 4, PValue: 0.001}, ctx)

	md := r.Markdown()
	assert.Contains(t, md, "Mean of A === : 1.0")
	assert.Contains(t, md, "Mean of B --- : 2.0")
	assert.NotContains(t, md, "\n===")
	assert.NotContains(t, md, "\r")

	out := string(r.HTML())
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<h2>")
	assert.Contains(t, out, "<p>Mean of A === : 1.0</p>")
}
