package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/registry"
	"github.com/vovakirdan/collide/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List scenario sets",
	Long: `Shows the built-in scenario sets. With a directory argument, the
scenario files found under it are listed too.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(cmd *cobra.Command, args []string) {
	sets := registry.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sets {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Println("Built-in sets:")
	fmt.Println()
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Cases", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, s := range sets {
		fmt.Printf("  %-*s  %-5d  %s\n", maxIDLen, s.ID, s.Cases, s.Title)
	}

	if len(args) == 0 {
		fmt.Println()
		fmt.Println("Run 'collide run --builtin' to evaluate them.")
		return
	}

	files, err := scenario.NewLoader(args[0]).LoadAll()
	if err != nil {
		logger.Warn("some scenario files could not be loaded", "error", err)
	}

	fmt.Println()
	fmt.Printf("Sets in %s:\n", args[0])
	fmt.Println()
	if len(files) == 0 {
		fmt.Println("  No scenario files found.")
		return
	}

	maxIDLen = 2
	for _, s := range files {
		maxIDLen = max(maxIDLen, len(s.ID))
	}
	fmt.Printf("  %-*s  %-5s  %-16s  %s\n", maxIDLen, "ID", "Cases", "Digest", "Source")
	fmt.Printf("  %-*s  %-5s  %-16s  %s\n", maxIDLen, "--", "-----", "------", "------")
	for _, s := range files {
		fmt.Printf("  %-*s  %-5d  %-16s  %s\n", maxIDLen, s.ID, len(s.Cases), scenario.Digest(s), s.Source)
	}
}
