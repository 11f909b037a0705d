package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/scenario"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-run scenario files when they change",
	Long: `Evaluate every scenario file under a directory, then evaluate each file
again whenever it is written. Runs are not recorded.

Examples:
  collide watch ./scenarios`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sets, err := scenario.NewLoader(dir).LoadAll()
	if err != nil {
		logger.Warn("some scenario files could not be loaded", "error", err)
	}
	evaluate(ctx, sets)

	w, err := scenario.NewWatcher(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", dir, err)
		os.Exit(1)
	}
	defer w.Close()

	logger.Info("watching for changes", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			set, err := scenario.LoadFile(path)
			if err != nil {
				logger.Error("failed to load scenario", "path", path, "error", err)
				continue
			}
			logger.Debug("scenario changed", "path", path)
			evaluate(ctx, []scenario.Set{set})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("watch error", "error", err)
		}
	}
}

func evaluate(ctx context.Context, sets []scenario.Set) {
	reports, err := scenario.Run(ctx, sets, cfg.Runner.Workers)
	for _, r := range reports {
		printReport(os.Stdout, r)
	}
	if err != nil {
		logger.Warn("run interrupted", "error", err)
	}
}
