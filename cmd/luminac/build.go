package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lumina-lang/luminac/internal/codegen/js"
	"github.com/lumina-lang/luminac/internal/config"
	"github.com/lumina-lang/luminac/internal/pipeline"
	"github.com/lumina-lang/luminac/internal/project"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var out string
	var target string
	var sourceMap bool
	var cjs bool

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Compile a file to JavaScript or WAT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			src := readSourceOrExit(args[0])

			projCfg, err := config.LoadOrDefault(config.DefaultFilename)
			if err != nil {
				return fmt.Errorf("loading %s: %w", config.DefaultFilename, err)
			}
			if target == "" {
				target = projCfg.Target
			}

			cfg := pipeline.Config{
				URI:        args[0],
				Mode:       pipeline.ModeEmit,
				SourceMap:  sourceMap,
				ProjectCfg: project.Config{MaxErrors: projCfg.MaxErrors},
			}
			if cjs {
				cfg.JSFormat = js.FormatCJS
			}
			switch strings.ToLower(target) {
			case "wat":
				cfg.Target = pipeline.TargetWAT
			default:
				cfg.Target = pipeline.TargetJS
			}

			res, err := pipeline.Compile(src, cfg)
			if err != nil {
				return err
			}
			log.WithField("phase", "build").WithField("elapsed", time.Since(start)).WithField("target", target).Debug("finished")

			printDiagnostics(res.Diagnostics)
			if hasErrors(res.Diagnostics) {
				return fmt.Errorf("build failed: %d error(s)", countErrors(res.Diagnostics))
			}

			if out == "" {
				fmt.Println(res.Code)
				return nil
			}
			if err := os.WriteFile(out, []byte(res.Code), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Printf("%s wrote %s\n", green("✓"), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "target: js or wat (defaults to lumina.yaml's target, then js)")
	cmd.Flags().BoolVar(&sourceMap, "source-map", false, "emit a source map alongside JS output")
	cmd.Flags().BoolVar(&cjs, "cjs", false, "emit CommonJS instead of ES modules")
	return cmd
}
