package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mirrow/internal/cli"
)

// go run ./cmd/catalog format --title "Round Mirror" description.html
// go run ./cmd/catalog ingest && go run ./cmd/catalog process
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
