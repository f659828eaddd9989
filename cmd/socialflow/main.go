package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"SocialFlow/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			os.Exit(130)
		case app.IsRedirect(err):
			// The navigator already told the user to sign in
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
