package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the t2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play 2048.

Each SSH connection gets its own session with the start menu and a
time-based seed; --seed and game.seed only apply to local play.
Scores are stored per server (all users share the same leaderboard).

Host key handling:
  - Uses --host-key, or ssh.host_key_path from the config
  - The key is generated on first start if the file does not exist

Examples:
  t2048 serve                           # Listen on :2048
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --idle-timeout 5m         # Disconnect idle sessions

Users can connect with:
  ssh localhost -p 2048`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (0 = from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	serverLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048-ssh",
	})

	server, err := tui.NewSSHServer(cfg, serverLogger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if port := server.Port(); port != "" {
		serverLogger.Info("connect with", "cmd", "ssh localhost -p "+port)
	}
	serverLogger.Info("press Ctrl+C to stop")

	return server.ListenAndServe()
}
