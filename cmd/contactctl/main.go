package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/fredjean/fredjean-net-contact/internal/ctl"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {

	_ = godotenv.Load()

	ctx := context.Background()

	// Logs go to stderr so table and JSON output stay pipeable.
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := ctl.InitApp(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
