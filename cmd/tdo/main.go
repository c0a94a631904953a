// Package main is the entry point for the tdo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tdo/internal/auth"
	"tdo/internal/backend/taskapi"
	"tdo/internal/cli"
	"tdo/internal/commands"
	"tdo/internal/config"
	"tdo/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config, sess *auth.Manager, logger *zap.Logger) (service.Service, error) {
		return taskapi.New(cfg, sess, logger), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
