// Package main provides the entry point for the docbasis CLI, which
// normalizes a markup document into its harvested structured value.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/haldor-ness/docbasis"
	"github.com/haldor-ness/docbasis/config"
	"github.com/haldor-ness/docbasis/xerr"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("docbasis", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configPath = fs.String("config", "docbasis.jsonc", "path to the JSONC pipeline configuration file")
		input      = fs.String("input", "", "path to the document to normalize (required)")
		logLevel   = fs.String("log-level", "info", "log level: error|warn|info|debug")
		showVer    = fs.Bool("version", false, "print version and exit")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docbasis -input <file> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Learns a basis graph from a markup document and harvests its structured value.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.SetOutput(os.Stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fs.Usage()
		return 2
	}

	if *showVer {
		fmt.Printf("docbasis %s\n", version)
		return 0
	}

	if *input == "" {
		fs.Usage()
		return 2
	}

	logger, err := setupLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docbasis: %v\n", err)
		return 2
	}

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			logger.Warn("error closing pipeline resources", slog.String("error", err.Error()))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if sig, ok := <-sigCh; ok {
			logger.Info("received signal, cancelling", slog.String("signal", sig.String()))
			cancel()
		}
	}()

	result, err := docbasis.NormalizeFile(ctx, cfg, *input)
	if err != nil {
		logger.Error("normalize failed", slog.String("error", err.Error()), slog.Int("exit_code", exitCodeFor(err)))
		return exitCodeFor(err)
	}

	out, err := json.MarshalIndent(result.Value, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", slog.String("error", err.Error()))
		return 1
	}
	fmt.Println(string(out))
	return 0
}

// exitCodeFor maps a pipeline failure to a process exit code: 0 is
// reserved for success, so every failure here is non-zero, with
// DocumentNotProvided, UnexpectedDocumentType and MalformedXml (input
// problems, exit code 2) distinguished from internal/oracle/cache
// failures (exit code 1).
func exitCodeFor(err error) int {
	var xe *xerr.Error
	if !errors.As(err, &xe) {
		return 1
	}
	switch xe.Kind() {
	case xerr.DocumentNotProvided, xerr.UnexpectedDocumentType, xerr.MalformedXml:
		return 2
	default:
		return 1
	}
}

func setupLogger(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "error":
		slogLevel = slog.LevelError
	case "warn":
		slogLevel = slog.LevelWarn
	case "info":
		slogLevel = slog.LevelInfo
	case "debug":
		slogLevel = slog.LevelDebug
	default:
		return nil, fmt.Errorf("invalid log level: %q", level)
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	return slog.New(handler), nil
}
