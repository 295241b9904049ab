// Package main provides the datebug CLI, which writes a fixed list of ancient
// dates through a database and reports whether their years survive the round
// trip.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitUserError)
	}
}
