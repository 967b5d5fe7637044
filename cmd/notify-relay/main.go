// Command notify-relay delivers queued moderation notifications from the
// outbox to the configured webhook on a cron schedule.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/osfio/collections-moderation/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunRelay(ctx); err != nil {
		log.Fatalf("notify-relay: %v", err)
	}
}
