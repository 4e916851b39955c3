// Command savesync keeps game save folders in step with a version-controlled
// backup repository.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"savesync/src/cli"
)

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.ExecuteContext(ctx)
	stop()
	os.Exit(code)
}

// setupLogging installs the default slog handler before cobra parses
// anything, so config and flag errors already log through it. The verbose
// flag is scanned straight from os.Args for the same reason.
func setupLogging() {
	level := slog.LevelInfo
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			level = slog.LevelDebug
		}
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}
