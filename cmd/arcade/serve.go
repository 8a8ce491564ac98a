package main

import (
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagRate        float64
	flagBurst       int
	flagMaxSessions int
	flagSSHLevel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server under the SSH user name, so all users
share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Server logs go to stderr unless --log-file is given.

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --rate 0.5 --burst 2      # Accept at most one session every 2s
  arcade serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().Float64Var(&flagRate, "rate", def.SessionsPerSecond, "New sessions accepted per second (0 = unlimited)")
	serveCmd.Flags().IntVar(&flagBurst, "burst", def.SessionBurst, "Sessions accepted at once before --rate applies")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", def.MaxSessions, "Concurrent sessions allowed (0 = unlimited)")
	serveCmd.Flags().StringVar(&flagSSHLevel, "difficulty", "", "Difficulty preset for remote games: easy, normal, hard, fixed")
}

func runServe(cmd *cobra.Command, _ []string) error {
	preset, ok := config.ParsePreset(flagSSHLevel)
	if !ok {
		return fmt.Errorf("unknown difficulty %q, use easy, normal, hard or fixed", flagSSHLevel)
	}
	if flagRate < 0 {
		return fmt.Errorf("--rate must not be negative, got %v", flagRate)
	}

	cfg := tui.SSHServerConfig{
		Address:           flagSSHAddr,
		HostKeyPath:       flagHostKey,
		DBPath:            flagDBPath,
		IdleTimeout:       time.Duration(flagIdleTimeout) * time.Minute,
		SessionsPerSecond: flagRate,
		SessionBurst:      flagBurst,
		MaxSessions:       flagMaxSessions,
		Difficulty:        preset,
		Controls:          arcadeCfg.Controls,
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logger = log.Default().WithPrefix("arcade-ssh")
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting arcade SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// portOf returns the port part of a host:port listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
