// Command valerror-demo serves a demo API whose validation failures are
// answered with the 400 envelope, and prints its patched OpenAPI document.
//
// Run:
//
//	go run ./cmd/valerror-demo serve --addr :8080
//	go run ./cmd/valerror-demo openapi --format yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
