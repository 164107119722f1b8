// Command caseboardd runs a headless board session: it mirrors the
// active cases locally, serves commands through the dispatcher, follows
// the realtime changefeed, and reports presence until interrupted.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/fabworks/caseboard/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("caseboardd: %v", err)
	}
}
