// Package testkit generates seeded sample datasets for demos and tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"statcompare/internal/errors"

	"github.com/xuri/excelize/v2"
)

// SampleConfig configures the sample generator
type SampleConfig struct {
	Rows int
	Seed int64
	// Groups label the "group" column round-robin; GroupMeans give each
	// group's mean of "score".
	Groups     []string
	GroupMeans []float64
	StdDev     float64
	// TreatmentShift is added to the mean of "treatment" relative to "baseline".
	TreatmentShift float64
	// Association is the probability that "outcome" follows "segment".
	Association float64
	// MissingRate blanks that share of "score" cells.
	MissingRate float64
}

// Sample column names
var SampleHeaders = []string{"group", "score", "baseline", "treatment", "segment", "outcome"}

// DefaultSampleConfig returns a config whose ANOVA, t-test and chi-square
// are all clearly significant.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Rows:           120,
		Seed:           42,
		Groups:         []string{"control", "low", "high"},
		GroupMeans:     []float64{50, 55, 65},
		StdDev:         8,
		TreatmentShift: 6,
		Association:    0.8,
		MissingRate:    0,
	}
}

// SampleGenerator produces the rows of one sample dataset
type SampleGenerator struct {
	config SampleConfig
	rng    *rand.Rand
}

// NewSampleGenerator validates the config
func NewSampleGenerator(config SampleConfig) (*SampleGenerator, error) {
	switch {
	case config.Rows < 0:
		return nil, errors.InvalidInput("rows must not be negative")
	case len(config.Groups) == 0:
		return nil, errors.InvalidInput("at least one group is required")
	case len(config.GroupMeans) != len(config.Groups):
		return nil, errors.InvalidInput(fmt.Sprintf("%d group means for %d groups", len(config.GroupMeans), len(config.Groups)))
	case config.StdDev < 0:
		return nil, errors.InvalidInput("standard deviation must not be negative")
	case config.Association < 0 || config.Association > 1:
		return nil, errors.InvalidInput("association must be within [0, 1]")
	case config.MissingRate < 0 || config.MissingRate > 1:
		return nil, errors.InvalidInput("missing rate must be within [0, 1]")
	}
	return &SampleGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}, nil
}

// Records returns the header followed by Rows data records. The same seed
// always yields the same records.
func (g *SampleGenerator) Records() [][]string {
	g.rng.Seed(g.config.Seed)
	records := make([][]string, 0, g.config.Rows+1)
	records = append(records, append([]string(nil), SampleHeaders...))

	for i := 0; i < g.config.Rows; i++ {
		gi := i % len(g.config.Groups)
		score := formatValue(g.normal(g.config.GroupMeans[gi]))
		if g.rng.Float64() < g.config.MissingRate {
			score = ""
		}

		inB := g.rng.Intn(2) == 1
		// outcome agrees with segment with probability Association
		agrees := g.rng.Float64() < g.config.Association
		segment, outcome := "a", "no"
		if inB {
			segment = "b"
		}
		if inB != agrees {
			outcome = "yes"
		}

		records = append(records, []string{
			g.config.Groups[gi],
			score,
			formatValue(g.normal(50)),
			formatValue(g.normal(50 + g.config.TreatmentShift)),
			segment,
			outcome,
		})
	}
	return records
}

func (g *SampleGenerator) normal(mean float64) float64 {
	return mean + g.rng.NormFloat64()*g.config.StdDev
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteCSV writes the records as CSV
func (g *SampleGenerator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(g.Records()); err != nil {
		return errors.Wrap(err, "failed to write CSV")
	}
	return nil
}

// WriteXLSX writes the records to the first sheet of a workbook. Numeric
// columns are stored as numbers.
func (g *SampleGenerator) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for r, record := range g.Records() {
		row := make([]interface{}, len(record))
		for c, cell := range record {
			if v, err := strconv.ParseFloat(cell, 64); err == nil && r > 0 {
				row[c] = v
			} else {
				row[c] = cell
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return errors.Wrap(err, "failed to address row")
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}
