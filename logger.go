package raptordb

import (
	"log/slog"
	"os"

	"github.com/hupe1980/raptordb/model"
)

// Logger wraps slog.Logger with raptordb-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithType adds a property type name to the logger.
func (l *Logger) WithType(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("type", name),
	}
}

// LogRegisterType logs the registration of a node or edge property type.
func (l *Logger) LogRegisterType(scope, name string, fields int, err error) {
	if err != nil {
		l.Error("type registration failed",
			"scope", scope,
			"type", name,
			"error", err,
		)
	} else {
		l.Debug("type registered",
			"scope", scope,
			"type", name,
			"fields", fields,
		)
	}
}

// LogAddNode logs a node insertion.
func (l *Logger) LogAddNode(id model.NodeID, err error) {
	if err != nil {
		l.Warn("add node failed",
			"error", err,
		)
	} else {
		l.Debug("node added",
			"id", id,
		)
	}
}

// LogAddEdge logs an edge insertion.
func (l *Logger) LogAddEdge(id model.EdgeID, from, to model.NodeID, err error) {
	if err != nil {
		l.Warn("add edge failed",
			"from", from,
			"to", to,
			"error", err,
		)
	} else {
		l.Debug("edge added",
			"id", id,
			"from", from,
			"to", to,
		)
	}
}

// LogDeleteNode logs a node deletion together with its cascaded edges.
func (l *Logger) LogDeleteNode(id model.NodeID, cascaded int, err error) {
	if err != nil {
		l.Warn("delete node failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("node deleted",
			"id", id,
			"cascaded_edges", cascaded,
		)
	}
}

// LogDeleteEdge logs an edge deletion.
func (l *Logger) LogDeleteEdge(id model.EdgeID, err error) {
	if err != nil {
		l.Warn("delete edge failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("edge deleted",
			"id", id,
		)
	}
}

// LogCompare logs a structural equivalence check.
func (l *Logger) LogCompare(nodes, edges int, equal bool) {
	l.Info("graphs compared",
		"nodes", nodes,
		"edges", edges,
		"equal", equal,
	)
}
