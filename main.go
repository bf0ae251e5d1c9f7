package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"watty-downloader/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("Error executing command: %v", err)
	}
}
