package main

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/pipeline"
	"github.com/spf13/cobra"
)

// newEmitJSCmd and newEmitWATCmd are thin fixed-target aliases over
// `build`, for a one-word invocation.
func newEmitJSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emit-js <file>",
		Short: "Compile a file to JavaScript and print it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitTo(args[0], pipeline.TargetJS)
		},
	}
}

func newEmitWATCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emit-wat <file>",
		Short: "Compile a file to WebAssembly text and print it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitTo(args[0], pipeline.TargetWAT)
		},
	}
}

func emitTo(path string, target pipeline.Target) error {
	src := readSourceOrExit(path)
	res, err := pipeline.Compile(src, pipeline.Config{URI: path, Mode: pipeline.ModeEmit, Target: target})
	if err != nil {
		return err
	}
	printDiagnostics(res.Diagnostics)
	if hasErrors(res.Diagnostics) {
		return fmt.Errorf("%d error(s) found", countErrors(res.Diagnostics))
	}
	fmt.Println(res.Code)
	return nil
}
