// Command raptordb loads property graph documents and reports on them.
//
// Usage:
//
//	raptordb [flags] stats <file.yaml>
//	raptordb [flags] compare <a.yaml> <b.yaml>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/raptordb"
	"github.com/hupe1980/raptordb/loader"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// errNotEqual makes compare exit non-zero without printing an error twice.
var errNotEqual = errors.New("graphs differ")

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		if !errors.Is(err, errNotEqual) {
			fmt.Fprintf(os.Stderr, "raptordb: %v\n", err)
		}
		os.Exit(1)
	}
}

func mainImpl() error {
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	logger := initLogger(*logLevel)
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "stats":
		if len(rest) != 1 {
			return errors.New("stats expects exactly one file")
		}
		return runStats(ctx, os.Stdout, logger, rest[0])
	case "compare":
		if len(rest) != 2 {
			return errors.New("compare expects exactly two files")
		}
		return runCompare(ctx, os.Stdout, logger, rest[0], rest[1])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: raptordb [flags] stats <file>\n       raptordb [flags] compare <a> <b>\n\nflags:\n")
	flag.PrintDefaults()
}

func load(ctx context.Context, logger *slog.Logger, path string) (*loader.Result, error) {
	return loader.LoadFile(ctx, path,
		loader.WithLogger(logger.With("file", path)),
		loader.WithDBOptions(raptordb.WithLogger(&raptordb.Logger{Logger: logger})),
	)
}

func runStats(ctx context.Context, w io.Writer, logger *slog.Logger, path string) error {
	res, err := load(ctx, logger, path)
	if err != nil {
		return err
	}

	s := res.DB.Stats()
	fmt.Fprintf(w, "nodes: %d\nedges: %d\n", s.Nodes, s.Edges)
	if res.SkippedEdges > 0 || res.SkippedRelations > 0 {
		fmt.Fprintf(w, "skipped: %d edges, %d relations\n", res.SkippedEdges, res.SkippedRelations)
	}
	for _, t := range s.NodeTypes {
		fmt.Fprintf(w, "node type %s (%d fields): %d\n", t.Name, t.Fields, t.Properties)
	}
	for _, t := range s.EdgeTypes {
		fmt.Fprintf(w, "edge type %s (%d fields): %d\n", t.Name, t.Fields, t.Properties)
	}
	return nil
}

func runCompare(ctx context.Context, w io.Writer, logger *slog.Logger, pathA, pathB string) error {
	a, err := load(ctx, logger, pathA)
	if err != nil {
		return err
	}
	b, err := load(ctx, logger, pathB)
	if err != nil {
		return err
	}

	equal, err := a.DB.Equal(b.DB)
	if err != nil {
		return err
	}
	if !equal {
		fmt.Fprintln(w, "different")
		return errNotEqual
	}
	fmt.Fprintln(w, "equal")
	return nil
}

// initLogger initializes a colored structured logger with the given level.
func initLogger(level string) *slog.Logger {
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

	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}
