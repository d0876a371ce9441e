package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/IT21177828/CTSE-Project/internal/app/notifier"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := notifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("notification service failed: %v", err)
	}
}
