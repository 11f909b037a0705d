package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/scenario"
	"github.com/vovakirdan/collide/internal/storage"
)

var (
	flagBuiltin bool
	flagWorkers int
	flagNoSave  bool
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Evaluate scenario sets",
	Long: `Evaluate scenario files and directories. Without paths the built-in
sets are run. Each evaluated set is recorded in the history database
unless --no-save is given or storage.save_runs is off.

Exits with status 1 if any case failed or a file could not be loaded.

Examples:
  collide run ./scenarios
  collide run pair.yaml --builtin
  collide run --workers 4 --no-save ./scenarios`,
	Run: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagBuiltin, "builtin", false, "Also run the built-in sets")
	runCmd.Flags().IntVar(&flagWorkers, "workers", -1, "Concurrent sets (0 = GOMAXPROCS, default from config)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record runs")
}

func runRun(cmd *cobra.Command, args []string) {
	sets, loadErr := scenario.LoadPaths(args...)
	if loadErr != nil {
		logger.Error("failed to load scenarios", "error", loadErr)
	}
	if flagBuiltin || len(args) == 0 {
		sets = append(sets, registry.All()...)
	}
	if len(sets) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no scenario sets to run")
		os.Exit(1)
	}

	workers := cfg.Runner.Workers
	if flagWorkers >= 0 {
		workers = flagWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reports, runErr := scenario.Run(ctx, sets, workers)
	if runErr != nil {
		logger.Warn("run interrupted", "completed", len(reports), "total", len(sets))
	}

	for _, r := range reports {
		printReport(os.Stdout, r)
	}

	if cfg.Storage.SaveRuns && !flagNoSave {
		saveReports(reports)
	}

	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}
	fmt.Printf("%d/%d sets passed\n", len(reports)-failed, len(reports))

	if failed > 0 || loadErr != nil || runErr != nil {
		os.Exit(1)
	}
}

// saveReports records the reports in the history database.
func saveReports(reports []scenario.Report) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open history database, runs not saved", "error", err)
		return
	}
	defer store.Close()

	for _, r := range reports {
		id, err := store.SaveRun(r)
		if err != nil {
			logger.Warn("failed to save run", "set", r.SetID, "error", err)
			continue
		}
		logger.Debug("run saved", "set", r.SetID, "run", id)
	}
}

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// printReport writes a one-line summary of the report followed by every
// case that did not pass.
func printReport(w io.Writer, r scenario.Report) {
	verdict := passStyle.Render("PASS")
	if !r.OK() {
		verdict = failStyle.Render("FAIL")
	}

	fmt.Fprintf(w, "%s %s  %d pass, %d fail, %d unchecked, %d unsupported  %s\n",
		verdict, r.SetID, r.Passed, r.Failed, r.Unchecked, r.Unsupported,
		dimStyle.Render(fmt.Sprintf("%s %s", r.Digest, r.Duration)))

	for _, res := range r.Results {
		switch res.Status {
		case scenario.StatusFail:
			if res.Err != nil {
				fmt.Fprintf(w, "    fail  %s: %v\n", res.Case, res.Err)
				continue
			}
			fmt.Fprintf(w, "    fail  %s: got %t, expected %t\n", res.Case, res.Colliding, *res.Expected)
		case scenario.StatusUnsupported:
			fmt.Fprintf(w, "    skip  %s: %v\n", res.Case, res.Err)
		}
	}
}
