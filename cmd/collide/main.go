// collide checks rectangles for collision and runs scenario sets against the
// collision dispatcher.
//
// Usage:
//
//	collide list [dir]          - List built-in and file scenario sets
//	collide check               - Test one pair given on the command line
//	collide run [paths...]      - Evaluate scenario sets and record the runs
//	collide watch [dir]         - Re-run scenario files when they change
//	collide history             - Show recorded runs
//	collide view                - Interactive playground
//	collide serve               - Serve the playground over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.collide, ./configs)
//	--db <path>         - History database (default from config)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/config"

	// Register built-in scenario sets
	_ "github.com/vovakirdan/collide/internal/scenario/builtin"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collide",
	Short: "collide - rectangle collision checks in your terminal",
	Long: `collide tests axis-aligned and rotated rectangles for collision using
the separating axis theorem.

Available commands:
  list     - Show built-in and file scenario sets
  check    - Test a single pair
  run      - Evaluate scenario sets
  watch    - Re-run scenario files on change
  history  - View recorded runs
  view     - Interactive playground
  serve    - Start SSH server for the playground

Examples:
  collide check --a 0,0,1,1 --b 1.1,0,1,1 --angle-b 45 --degrees
  collide run ./scenarios
  collide run --builtin
  collide view --set properties --case 3
  collide serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config, applies flag overrides and installs the logger.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		loaded.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:  cfg.Log.LogLevel(),
		Prefix: "collide",
	})
	collision.SetLogger(logger)
	return nil
}
