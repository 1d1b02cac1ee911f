// Command luminac is the Lumina compiler CLI: type-check, build to
// JavaScript or WebAssembly text, watch a file for changes, or drop
// into an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// version is set by ldflags at release build time.
var version = "dev"

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false})

	root := &cobra.Command{
		Use:     "luminac",
		Short:   bold("luminac") + " - the Lumina compiler",
		Version: version,
	}
	root.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\n", bold("luminac")))

	root.AddCommand(
		newCheckCmd(),
		newBuildCmd(),
		newEmitJSCmd(),
		newEmitWATCmd(),
		newWatchCmd(),
		newReplCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}
