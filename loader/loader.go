package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/raptordb"
	"github.com/hupe1980/raptordb/model"
)

var (
	// ErrDuplicateKey is returned when two nodes share a key.
	ErrDuplicateKey = errors.New("duplicate node key")

	// ErrUnknownType is returned when a node or edge names an undeclared type.
	ErrUnknownType = errors.New("unknown type")

	// ErrNullValue is returned for null field values. Fields are never null.
	ErrNullValue = errors.New("null values are not supported")
)

type options struct {
	logger    *slog.Logger
	dbOptions []raptordb.Option
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger for load progress and skipped elements.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDBOptions passes options to the DB created by Load.
func WithDBOptions(optFns ...raptordb.Option) Option {
	return func(o *options) {
		o.dbOptions = append(o.dbOptions, optFns...)
	}
}

// Result is a loaded database together with the identifiers assigned to
// document keys.
type Result struct {
	DB               *raptordb.DB
	Nodes            map[string]model.NodeID
	SkippedEdges     int
	SkippedRelations int
}

// LoadFile parses the document at path and loads it.
func LoadFile(ctx context.Context, path string, optFns ...Option) (*Result, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Load(ctx, doc, optFns...)
}

// Load builds a DB from a validated document. Edges referring to unknown
// node keys are skipped with a warning. A property that does not match its
// type aborts the load.
func Load(ctx context.Context, doc *Document, optFns ...Option) (*Result, error) {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	db := raptordb.New(o.dbOptions...)
	res := &Result{
		DB:    db,
		Nodes: make(map[string]model.NodeID, len(doc.Nodes)),
	}

	nodeTypes := make(map[string]*TypeConfig, len(doc.NodeTypes))
	nodeTypeIDs := make(map[string]model.NodePropertyTypeID, len(doc.NodeTypes))
	for i := range doc.NodeTypes {
		t := &doc.NodeTypes[i]
		id, err := db.RegisterNodeType(t.Name, t.descriptors())
		if err != nil {
			return nil, fmt.Errorf("node type %q: %w", t.Name, err)
		}
		nodeTypes[t.Name] = t
		nodeTypeIDs[t.Name] = id
	}

	edgeTypes := make(map[string]*TypeConfig, len(doc.EdgeTypes))
	edgeTypeIDs := make(map[string]model.EdgePropertyTypeID, len(doc.EdgeTypes))
	for i := range doc.EdgeTypes {
		t := &doc.EdgeTypes[i]
		id, err := db.RegisterEdgeType(t.Name, t.descriptors())
		if err != nil {
			return nil, fmt.Errorf("edge type %q: %w", t.Name, err)
		}
		edgeTypes[t.Name] = t
		edgeTypeIDs[t.Name] = id
	}

	for i := range doc.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := &doc.Nodes[i]

		typ, ok := nodeTypes[n.Type]
		if !ok {
			return nil, fmt.Errorf("node %q: %w %q", n.Key, ErrUnknownType, n.Type)
		}
		fs, err := fields(&n.Fields, typ)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Key, err)
		}
		id, err := db.AddNode(nodeTypeIDs[n.Type], fs)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Key, err)
		}
		res.Nodes[n.Key] = id
	}

	for i := range doc.Edges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e := &doc.Edges[i]
		name := e.name(i)

		from, okFrom := res.Nodes[e.From]
		to, okTo := res.Nodes[e.To]
		if !okFrom || !okTo {
			o.logger.Warn("skipping edge with unknown endpoint", "edge", name, "from", e.From, "to", e.To)
			res.SkippedEdges++
			continue
		}

		typ, ok := edgeTypes[e.Type]
		if !ok {
			return nil, fmt.Errorf("edge %s: %w %q", name, ErrUnknownType, e.Type)
		}
		kind, err := parseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", name, err)
		}
		fs, err := fields(&e.Fields, typ)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", name, err)
		}
		if _, err := db.AddEdge(from, to, kind, edgeTypeIDs[e.Type], fs); err != nil {
			return nil, fmt.Errorf("edge %s: %w", name, err)
		}
	}

	for _, r := range doc.Relations {
		o.logger.Info("skipping relation", "relation", r.Key, "members", len(r.Members))
		res.SkippedRelations++
	}

	stats := db.Stats()
	o.logger.Info("document loaded",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"skipped_edges", res.SkippedEdges,
		"skipped_relations", res.SkippedRelations,
	)

	return res, nil
}
