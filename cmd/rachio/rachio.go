package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clambin/rachio-tools/internal/cmd"
)

var (
	// overridden during build
	version = "change-me"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.RootCmd.Version = version
	if err := cmd.RootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("failed", "err", err)
		cancel()
		os.Exit(1)
	}
}
