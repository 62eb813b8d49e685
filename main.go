package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yarlson/claude-lazygit/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx, os.Stderr)
	stop()
	os.Exit(code)
}
