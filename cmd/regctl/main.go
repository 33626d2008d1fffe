// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command regctl runs maintenance tasks against the transcription database:
// migrations, token minting, spreadsheet exports and tree matching.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/taibuivan/ontvitals/internal/cli"
	"github.com/taibuivan/ontvitals/internal/platform/constants"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With(slog.String("app", constants.AppName))

	context, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand(cli.NewDeps(os.Stdout, log))
	if err := root.ExecuteContext(ctxutil.WithLogger(context, log)); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		cancel()
		os.Exit(1)
	}
}
