package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"statcompare/internal/errors"
	"statcompare/internal/testkit"

	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	config := testkit.DefaultSampleConfig()
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a seeded sample dataset suitable for every test",
		Long: `Write a synthetic dataset with the columns group, score, baseline,
treatment, segment and outcome. score differs by group (ANOVA), treatment is
shifted from baseline (t-test) and outcome follows segment (chi-square).

The format follows the output extension: .xlsx writes a workbook, anything
else CSV. Without --output the CSV goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := testkit.NewSampleGenerator(config)
			if err != nil {
				return err
			}
			if output == "" {
				return gen.WriteCSV(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return errors.Wrapf(err, "failed to create %s", output)
			}
			defer f.Close()

			var write func(io.Writer) error = gen.WriteCSV
			if strings.EqualFold(filepath.Ext(output), ".xlsx") {
				write = gen.WriteXLSX
			}
			if err := write(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", config.Rows, output)
			return f.Close()
		},
	}

	cmd.Flags().IntVar(&config.Rows, "rows", config.Rows, "Number of data rows")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	cmd.Flags().Float64Var(&config.TreatmentShift, "shift", config.TreatmentShift, "Mean shift of treatment over baseline")
	cmd.Flags().Float64Var(&config.Association, "association", config.Association, "Probability that outcome follows segment")
	cmd.Flags().Float64Var(&config.MissingRate, "missing", config.MissingRate, "Share of blank score cells")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.csv or .xlsx)")

	return cmd
}
