package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/spacesurvivor/internal/config"
	"github.com/tomz197/spacesurvivor/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs only go to a file when one is configured.
	logFile, err := cfg.OpenLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile, "game")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := loop.NewClient(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Config:   localConfig(cfg),
		Logger:   logger,
		Renderer: lipgloss.NewRenderer(os.Stdout),
	})
	if err != nil {
		return err
	}
	return client.Run(ctx)
}

// localConfig returns a copy of cfg for a player at their own terminal. The
// idle disconnect only protects a shared server, so it is turned off.
func localConfig(cfg *config.Config) *config.Config {
	local := *cfg
	local.SSH.IdleTimeout = 0
	return &local
}
