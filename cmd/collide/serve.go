package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/collide/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the playground SSH server",
	Long: `Start an SSH server that serves the collision playground.

Each SSH connection gets its own playground. Run history is read from
the server's database. Captures are disabled for remote sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config (default ~/.collide/host_key)

Examples:
  collide serve                           # Listen on the configured address
  collide serve --ssh :2222               # Listen on port 2222
  collide serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	sc := tui.DefaultSSHServerConfig()
	sc.Address = cfg.Server.Addr()
	sc.HostKeyPath = cfg.Server.HostKey
	sc.DBPath = cfg.Storage.Path
	sc.IdleTimeout = cfg.Server.IdleTimeout
	sc.Viewer = cfg.Viewer

	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sc.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting collide SSH server on %s\n", sc.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
