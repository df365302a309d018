package stats

import (
	"strings"
)

// TestKind tags which inferential test a selection targets
type TestKind string

const (
	KindTTest     TestKind = "ttest"
	KindANOVA     TestKind = "anova"
	KindChiSquare TestKind = "chi_square"
)

// AllKinds lists the selectable tests in display order
var AllKinds = []TestKind{KindTTest, KindANOVA, KindChiSquare}

// Label returns the literal selector label
func (k TestKind) Label() string {
	switch k {
	case KindTTest:
		return "Independent Samples t-test"
	case KindANOVA:
		return "One-way ANOVA"
	case KindChiSquare:
		return "Chi-Square Test"
	default:
		return string(k)
	}
}

// Prompt is the instruction shown above the column selectors
func (k TestKind) Prompt() string {
	switch k {
	case KindTTest:
		return "Select two columns for comparison:"
	case KindANOVA:
		return "Select a column for grouping:"
	case KindChiSquare:
		return "Select two categorical columns for comparison:"
	default:
		return ""
	}
}

// Valid reports whether k is one of the known kinds
func (k TestKind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// LookupTestKind accepts either the tag or the display label, case-insensitively
func LookupTestKind(s string) (TestKind, bool) {
	s = strings.TrimSpace(s)
	for _, k := range AllKinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, k.Label()) {
			return k, true
		}
	}
	switch strings.ToLower(s) {
	case "t-test", "t_test":
		return KindTTest, true
	case "chi2", "chisquare", "chi-square":
		return KindChiSquare, true
	}
	return "", false
}

// ParseTestKind is LookupTestKind falling back to the first selector option
func ParseTestKind(s string) TestKind {
	if k, ok := LookupTestKind(s); ok {
		return k
	}
	return KindTTest
}

// Selection is the current state of the selection widgets
type Selection struct {
	Test        TestKind
	Columns     []string
	GroupColumn string
}

// Complete reports whether the selection is sufficient to run its test
func (s Selection) Complete() bool {
	switch s.Test {
	case KindTTest, KindChiSquare:
		return len(s.Columns) == 2
	case KindANOVA:
		return s.GroupColumn != "" && len(s.Columns) > 0
	default:
		return false
	}
}

// Group is one partition of a numeric column
type Group struct {
	Label  string
	Values []float64
}

// GroupData is a numeric column partitioned by a grouping column
type GroupData []Group

// Samples returns the raw value slices in group order
func (g GroupData) Samples() [][]float64 {
	out := make([][]float64, len(g))
	for i, group := range g {
		out[i] = group.Values
	}
	return out
}

// ContingencyTable holds observed joint frequencies of two categorical columns
type ContingencyTable struct {
	RowLabels []string
	ColLabels []string
	Counts    [][]float64
}

// TestResult is produced fresh on every evaluation
type TestResult struct {
	Kind      TestKind
	Statistic float64
	PValue    float64
	// DoF and Expected are filled by the chi-square routine only.
	DoF      float64
	Expected [][]float64
}
