package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/platform/tui"
	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/scenario"
	"github.com/vovakirdan/collide/internal/storage"
)

var (
	flagViewSet  string
	flagViewFile string
	flagViewDir  string
	flagViewCase string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive collision playground",
	Long: `Move, rotate and resize two rectangles while the collision result
updates live. The starting pair can be taken from a built-in set, a set
found under --dir by ID, or a scenario file; the case is chosen by name or
1-based index.

Controls:
  WASD/Arrows  - Move the active shape
  [ ]          - Rotate
  + -          - Grow / shrink
  Tab          - Switch active shape
  Space        - Toggle auto-spin
  R            - Reset
  Ctrl+S       - Save the pair as a scenario file
  H            - Run history
  Q/Ctrl+C     - Quit

Examples:
  collide view
  collide view --set properties --case 3
  collide view --dir ./scenarios --set basics
  collide view --file ./scenarios/pairs.yaml --case "touching edge"`,
	Args: cobra.NoArgs,
	Run:  runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagViewSet, "set", "", "Built-in set to take the pair from")
	viewCmd.Flags().StringVar(&flagViewFile, "file", "", "Scenario file to take the pair from")
	viewCmd.Flags().StringVar(&flagViewDir, "dir", "", "Directory searched for --set when it is not built in")
	viewCmd.Flags().StringVar(&flagViewCase, "case", "1", "Case name or 1-based index")
	viewCmd.MarkFlagsMutuallyExclusive("set", "file")
	viewCmd.MarkFlagsMutuallyExclusive("dir", "file")
}

func runView(cmd *cobra.Command, args []string) {
	pair, focus, err := startingPair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Viewer.TickRate,
	}

	// History is optional in the playground
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	model := tui.NewSessionModel(pair, store, cfg.Viewer, rc).WithFocusSet(focus)
	if err := tui.RunSession(model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startingPair resolves the pair selected by flags and the set it belongs to.
func startingPair() ([2]scenario.Shape, string, error) {
	var set scenario.Set
	var err error

	switch {
	case flagViewSet != "":
		set, err = lookupSet(flagViewSet, flagViewDir)
	case flagViewFile != "":
		set, err = scenario.LoadFile(flagViewFile)
	default:
		return tui.DefaultPair(), "", nil
	}
	if err != nil {
		return [2]scenario.Shape{}, "", err
	}

	c, err := findCase(set, flagViewCase)
	if err != nil {
		return [2]scenario.Shape{}, "", err
	}
	return [2]scenario.Shape{c.A, c.B}, set.ID, nil
}

// lookupSet finds a set by ID among the built-ins, then under dir.
func lookupSet(id, dir string) (scenario.Set, error) {
	if registry.Exists(id) {
		return registry.Create(id)
	}
	if dir == "" {
		return scenario.Set{}, fmt.Errorf("unknown set %q (see 'collide list', or pass --dir)", id)
	}
	return scenario.NewLoader(dir).LoadByID(id)
}

// findCase looks a case up by name, then by 1-based index.
func findCase(set scenario.Set, ref string) (scenario.Case, error) {
	for _, c := range set.Cases {
		if c.Name == ref {
			return c, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 1 && i <= len(set.Cases) {
		return set.Cases[i-1], nil
	}
	return scenario.Case{}, fmt.Errorf("set %q has no case %q", set.ID, ref)
}
