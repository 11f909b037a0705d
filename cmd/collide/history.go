package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/collide/internal/platform/tui"
	"github.com/vovakirdan/collide/internal/storage"
)

var (
	flagHistorySet   string
	flagHistoryRun   string
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display recent runs, optionally for one set.

Examples:
  collide history
  collide history --set properties --limit 5
  collide history --run 0f8fad5b-d9cb-469f-a165-70867728950e
  collide history --tui
  collide history --set properties --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistorySet, "set", "", "Only show runs of this set")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show the case results of one run")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) {
	setID := flagHistorySet

	// Open run storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if setID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs --set")
			os.Exit(1)
		}
		if err := store.ClearRuns(setID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("History of %s cleared.\n", setID)
		return
	}

	if flagHistoryRun != "" {
		if err := printRun(os.Stdout, store, flagHistoryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagHistoryTUI {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, setID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.RecentRuns(setID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Use 'collide run' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-16s  %-4s  %-5s  %-5s  %s\n", "Run", "Set", "OK", "Pass", "Fail", "Date")
	fmt.Printf("  %-36s  %-16s  %-4s  %-5s  %-5s  %s\n", "---", "---", "--", "----", "----", "----")

	for _, r := range runs {
		ok := "yes"
		if !r.OK() {
			ok = "no"
		}
		fmt.Printf("  %-36s  %-16s  %-4s  %-5d  %-5d  %s\n",
			r.ID, r.SetID, ok, r.Passed, r.Failed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if setID != "" {
		stats, err := store.GetSetStats(setID)
		if err == nil && stats != nil {
			fmt.Println()
			fmt.Printf("%d runs, %d failed, last digest %s\n", stats.Runs, stats.FailedRuns, stats.LastDigest)
		}
	}
}

// printRun writes one stored run and its case results.
func printRun(w io.Writer, store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %q", id)
	}
	results, err := store.RunResults(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %s - %s\n", run.ID, run.SetID)
	fmt.Fprintf(w, "Source: %s  Digest: %s  Date: %s\n",
		run.Source, run.Digest, run.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-4s  %-32s  %-11s  %-5s  %s\n", "#", "Case", "Status", "Hit", "Expect")
	fmt.Fprintf(w, "  %-4s  %-32s  %-11s  %-5s  %s\n", "-", "----", "------", "---", "------")
	for _, r := range results {
		expect := "-"
		if r.Expected != nil {
			expect = fmt.Sprintf("%t", *r.Expected)
		}
		fmt.Fprintf(w, "  %-4d  %-32s  %-11s  %-5t  %s\n", r.Position+1, r.Name, r.Status, r.Colliding, expect)
		if r.Error != "" {
			fmt.Fprintf(w, "        %s\n", r.Error)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d pass, %d fail, %d unchecked, %d unsupported\n",
		run.Passed, run.Failed, run.Unchecked, run.Unsupported)
	return nil
}
