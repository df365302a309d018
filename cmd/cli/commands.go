package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"statcompare/adapters/excel"
	"statcompare/adapters/stats/inferential"
	"statcompare/app"
	"statcompare/domain/dataset"
	"statcompare/domain/stats"
	"statcompare/internal"
	"statcompare/internal/errors"
	"statcompare/internal/profiling"

	"github.com/spf13/cobra"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
)

func newService() *app.ComparisonService {
	logger := internal.NewDefaultLogger()
	return app.NewComparisonService(excel.NewUploadReader(logger), inferential.Executor{}, nil, logger)
}

func newRunCmd() *cobra.Command {
	var testName string
	var columns []string
	var groupColumn string
	var format string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run one test against selected columns and print the report",
		Long: `Run one inferential test against columns of an uploaded file.

Tests: ttest (two columns), anova (a grouping column plus at least one column;
only the first is tested), chi_square (two categorical columns).

Example: statcompare-cli run scores.csv --test anova --group-column class --columns score`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := stats.LookupTestKind(testName)
			if !ok {
				return errors.InvalidInput(fmt.Sprintf("unknown test %q (want ttest, anova or chi_square)", testName))
			}
			if format != formatText && format != formatMarkdown {
				return errors.InvalidInput(fmt.Sprintf("unknown format %q (want text or markdown)", format))
			}
			sel := stats.Selection{Test: kind, Columns: columns, GroupColumn: groupColumn}
			return runTest(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], sel, format)
		},
	}

	cmd.Flags().StringVar(&testName, "test", string(stats.KindTTest), "Test to run: ttest, anova or chi_square")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to compare, in order")
	cmd.Flags().StringVar(&groupColumn, "group-column", "", "Grouping column for ANOVA (default: first column)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or markdown")

	return cmd
}

func runTest(ctx context.Context, stdout, stderr io.Writer, path string, sel stats.Selection, format string) error {
	upload, err := readFile(path)
	if err != nil {
		return err
	}
	svc := newService()

	table, err := svc.Load(upload)
	if err != nil {
		return err
	}
	if err := checkColumns(table, sel); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	out := svc.EvaluateTable(ctx, table, sel)
	if !out.Ran() {
		fmt.Fprintf(stderr, "no test run: %s %s\n", sel.Test.Label(), strings.ToLower(sel.Test.Prompt()))
		return nil
	}

	switch format {
	case formatMarkdown:
		fmt.Fprintln(stdout, out.Report.Markdown())
	default:
		fmt.Fprintln(stdout, out.Report.Text())
	}
	return nil
}

// checkColumns rejects names the file does not have; on the command line
// there is no widget to keep the selection within the options.
func checkColumns(table *dataset.Table, sel stats.Selection) error {
	names := append([]string{}, sel.Columns...)
	if sel.GroupColumn != "" {
		names = append(names, sel.GroupColumn)
	}
	for _, name := range names {
		if !table.HasColumn(name) {
			return errors.NotFound(fmt.Sprintf("column %q (have %s)", name, strings.Join(table.ColumnNames(), ", ")))
		}
	}
	return nil
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns [file]",
		Short: "List the columns of a file with their inferred kind and a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readFile(args[0])
			if err != nil {
				return err
			}
			table, err := newService().Load(upload)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tKIND\tMISSING\tUNIQUE\tMEAN\tSTD")
			for _, p := range profiling.ProfileTable(table) {
				mean, std := "-", "-"
				if p.Summary != nil {
					mean = dataset.FormatFloat(p.Summary.Mean)
					std = dataset.FormatFloat(p.Summary.StdDev)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n", p.Name, p.Kind, p.Missing, p.Unique, mean, std)
			}
			return w.Flush()
		},
	}
}

func readFile(path string) (app.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return app.Upload{}, errors.Wrapf(err, "failed to read %s", path)
	}
	return app.Upload{Filename: filepath.Base(path), Data: data}, nil
}
