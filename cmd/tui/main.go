package main

import (
	"fmt"
	"os"
	"path/filepath"

	"statcompare/adapters/excel"
	"statcompare/adapters/stats/inferential"
	"statcompare/app"
	"statcompare/internal"
	"statcompare/internal/errors"
	"statcompare/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:           "statcompare-tui [file]",
		Short:         "Pick columns and run inferential tests interactively in the terminal",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	// the alternate screen owns stdout, keep logs quiet
	logger := internal.NewNopLogger()
	svc := app.NewComparisonService(excel.NewUploadReader(logger), inferential.Executor{}, nil, logger)

	filename := filepath.Base(path)
	table, err := svc.Load(app.Upload{Filename: filename, Data: data})
	if err != nil {
		return err
	}

	p := tea.NewProgram(terminal.NewModel(svc, table, filename), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
