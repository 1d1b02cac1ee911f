package main

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/lumina-lang/luminac/internal/pipeline"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Recheck a file on every save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			fmt.Printf("%s watching %s for changes (Ctrl+C to stop)\n", cyan("◉"), path)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()

			dir := filepath.Dir(path)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}

			recheck := func() {
				src := readSourceOrExit(path)
				res, err := pipeline.Compile(src, pipeline.Config{URI: path, Mode: pipeline.ModeCheck})
				if err != nil {
					fmt.Printf("%s %v\n", red("Error"), err)
					return
				}
				printDiagnostics(res.Diagnostics)
				if hasErrors(res.Diagnostics) {
					fmt.Printf("%s %d error(s)\n", red("✗"), countErrors(res.Diagnostics))
				} else {
					fmt.Printf("%s no errors\n", green("✓"))
				}
			}

			recheck()
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != filepath.Clean(path) {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					recheck()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Printf("%s watcher: %v\n", yellow("Warning"), err)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "js", "target used for eventual build, reserved for future use")
	return cmd
}
