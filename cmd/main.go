package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/mantle-tutorial-go/config"
)

// Version will be set at build time
var Version = "development"

func main() {
	// .env is optional, the environment and flags work without it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("mantle-tutorial failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "mantle-tutorial",
		Usage:   "bridge assets and messages between Ethereum and Mantle",
		Version: Version,
		Flags:   globalFlags(),
		Before: func(c *cli.Context) error {
			logger, err := config.NewLogger(os.Stderr, c.String(flagLogLevel), c.Bool(flagLogColor))
			if err != nil {
				return err
			}
			logger.Debug("Starting mantle-tutorial ("+Version+")",
				"Go Version", runtime.Version(),
				"Operating System", runtime.GOOS,
				"Architecture", runtime.GOARCH)
			return nil
		},
		Commands: []*cli.Command{
			bridgeETHCommand(),
			bridgeERC20Command(),
			bridgeMNTCommand(),
			bridgeERC721Command(),
			commCommand(),
			estimateGasCommand(),
			viewTxCommand(),
			standardTokenCommand(),
			customTokenCommand(),
			deployCommand(),
			messageStatusCommand(),
			waitCommand(),
			proveCommand(),
			finalizeCommand(),
			serveCommand(),
		},
	}
}
