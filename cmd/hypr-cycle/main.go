package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/a9sk/hypr-cycle/internal/logging"
)

// set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Close()

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}
