package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// The batch pool is sized from GOMAXPROCS, which has to respect container quotas.
	undo, err := maxprocs.Set()
	defer undo()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set GOMAXPROCS:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}
