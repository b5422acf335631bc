package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kapil1024/Redfish-Service-Validator/internal/app"
)

func main() {
	// SIGINT and SIGTERM cancel the context so watch mode and long tree
	// validations shut down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args, os.Stdout, os.Stderr, nil); err != nil {
		//nolint:gocritic // os.Exit is intentional
		os.Exit(1)
	}
}
