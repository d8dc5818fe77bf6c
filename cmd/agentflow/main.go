package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/daap14/agentflow/internal/cli"
	"github.com/daap14/agentflow/internal/commands"
	"github.com/daap14/agentflow/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	app := commands.NewApp(cfg, os.Stdout, os.Stderr, logger)
	os.Exit(app.Run(os.Args[1:]))
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	logger := cli.NewLogger(logLevel, format, os.Stderr)
	slog.SetDefault(logger)
	return logger
}
