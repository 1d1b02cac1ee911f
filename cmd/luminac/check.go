package main

import (
	"fmt"
	"time"

	"github.com/lumina-lang/luminac/internal/config"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/pipeline"
	"github.com/lumina-lang/luminac/internal/project"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Type-check a file without emitting code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			src := readSourceOrExit(args[0])

			projCfg, err := config.LoadOrDefault(config.DefaultFilename)
			if err != nil {
				return fmt.Errorf("loading %s: %w", config.DefaultFilename, err)
			}

			res, err := pipeline.Compile(src, pipeline.Config{
				URI:        args[0],
				Mode:       pipeline.ModeCheck,
				ProjectCfg: project.Config{MaxErrors: projCfg.MaxErrors},
			})
			if err != nil {
				return err
			}
			log.WithField("phase", "check").WithField("elapsed", time.Since(start)).Debug("finished")

			printDiagnostics(res.Diagnostics)
			if hasErrors(res.Diagnostics) {
				return fmt.Errorf("%d error(s) found", countErrors(res.Diagnostics))
			}
			fmt.Println(green("✓") + " no errors")
			return nil
		},
	}
}

func countErrors(diags []diag.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}
