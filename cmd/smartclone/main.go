package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/scenarigo/smartclone/cmd/smartclone/cmd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cmd.Execute(ctx)
}
