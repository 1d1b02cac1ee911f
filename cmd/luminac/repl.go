package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lumina-lang/luminac/internal/pipeline"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const replURI = "virtual://repl"

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive Lumina REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl()
			return nil
		},
	}
}

// runRepl drives an interactive session: each submitted line is
// appended to the accumulated program and the whole thing recompiled.
// peterh/liner provides history and basic line editing.
func runRepl() {
	fmt.Printf("%s - the Lumina REPL\n", bold("luminac"))
	fmt.Println("Type :help for help, :quit to exit")
	fmt.Println()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var accumulated strings.Builder

	for {
		input, err := line.Prompt(">>> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err.Error() == "EOF" {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		line.AppendHistory(input)

		trimmed := strings.TrimSpace(input)
		switch trimmed {
		case ":quit", ":q":
			fmt.Println("Goodbye!")
			return
		case ":help", ":h":
			printReplHelp()
			continue
		case ":reset":
			accumulated.Reset()
			fmt.Println(green("✓") + " session reset")
			continue
		case "":
			continue
		}

		accumulated.WriteString(trimmed)
		accumulated.WriteString("\n")

		res, err := pipeline.Compile(accumulated.String(), pipeline.Config{URI: replURI, Mode: pipeline.ModeEmit, Target: pipeline.TargetJS})
		if err != nil {
			fmt.Printf("%s %v\n", red("Error"), err)
			continue
		}
		printDiagnostics(res.Diagnostics)
		if !hasErrors(res.Diagnostics) && res.Code != "" {
			fmt.Println(res.Code)
		}
	}
}

func printReplHelp() {
	fmt.Println("Commands:")
	fmt.Printf("  %s     show this help\n", cyan(":help"))
	fmt.Printf("  %s    reset the accumulated session\n", cyan(":reset"))
	fmt.Printf("  %s     exit the REPL\n", cyan(":quit"))
}
