package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/raptordb/graph"
	"github.com/hupe1980/raptordb/property"
	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a property graph.
type Document struct {
	Version   int              `yaml:"version"`
	NodeTypes []TypeConfig     `yaml:"node_types"`
	EdgeTypes []TypeConfig     `yaml:"edge_types"`
	Nodes     []NodeConfig     `yaml:"nodes"`
	Edges     []EdgeConfig     `yaml:"edges"`
	Relations []RelationConfig `yaml:"relations,omitempty"`
}

// TypeConfig declares a property type.
type TypeConfig struct {
	Name   string        `yaml:"name"`
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig declares one field of a property type.
type FieldConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // integer, float, string or boolean
	Nullable bool   `yaml:"nullable,omitempty"`
}

// NodeConfig describes a node. Fields is a mapping whose keys must follow
// the declaration order of the type.
type NodeConfig struct {
	Key    string    `yaml:"key"`
	Type   string    `yaml:"type"`
	Fields yaml.Node `yaml:"fields"`
}

// EdgeConfig describes an edge between two node keys.
type EdgeConfig struct {
	Key    string    `yaml:"key,omitempty"`
	From   string    `yaml:"from"`
	To     string    `yaml:"to"`
	Kind   string    `yaml:"kind,omitempty"` // directed (default) or undirected
	Type   string    `yaml:"type"`
	Fields yaml.Node `yaml:"fields"`
}

// RelationConfig describes a grouping of nodes. Relations are accepted in
// documents but not imported.
type RelationConfig struct {
	Key     string   `yaml:"key"`
	Members []string `yaml:"members,omitempty"`
}

// ParseFile reads and parses a document from a file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified document path
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	return &doc, nil
}

// Validate checks the document for structural errors. Field values are
// checked against their types when the document is loaded.
func (d *Document) Validate() error {
	if d.Version != 1 {
		return fmt.Errorf("unsupported document version: %d", d.Version)
	}

	nodeTypes, err := validateTypes("node type", d.NodeTypes)
	if err != nil {
		return err
	}
	edgeTypes, err := validateTypes("edge type", d.EdgeTypes)
	if err != nil {
		return err
	}

	keys := make(map[string]struct{}, len(d.Nodes))
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if n.Key == "" {
			return fmt.Errorf("node %d: key is required", i)
		}
		if _, ok := keys[n.Key]; ok {
			return fmt.Errorf("node %q: %w", n.Key, ErrDuplicateKey)
		}
		keys[n.Key] = struct{}{}
		if _, ok := nodeTypes[n.Type]; !ok {
			return fmt.Errorf("node %q: %w %q", n.Key, ErrUnknownType, n.Type)
		}
		if err := checkFields(&n.Fields); err != nil {
			return fmt.Errorf("node %q: %w", n.Key, err)
		}
	}

	for i := range d.Edges {
		e := &d.Edges[i]
		name := e.name(i)
		if e.From == "" || e.To == "" {
			return fmt.Errorf("edge %s: from and to are required", name)
		}
		if _, err := parseKind(e.Kind); err != nil {
			return fmt.Errorf("edge %s: %w", name, err)
		}
		if _, ok := edgeTypes[e.Type]; !ok {
			return fmt.Errorf("edge %s: %w %q", name, ErrUnknownType, e.Type)
		}
		if err := checkFields(&e.Fields); err != nil {
			return fmt.Errorf("edge %s: %w", name, err)
		}
	}

	return nil
}

func validateTypes(scope string, types []TypeConfig) (map[string]*TypeConfig, error) {
	out := make(map[string]*TypeConfig, len(types))
	for i := range types {
		t := &types[i]
		if t.Name == "" {
			return nil, fmt.Errorf("%s %d: name is required", scope, i)
		}
		if _, ok := out[t.Name]; ok {
			return nil, fmt.Errorf("%s %q: declared twice", scope, t.Name)
		}
		for _, f := range t.Fields {
			if _, ok := property.ParseFieldType(f.Type); !ok {
				return nil, fmt.Errorf("%s %q, field %q: invalid type %q", scope, t.Name, f.Name, f.Type)
			}
		}
		out[t.Name] = t
	}
	return out, nil
}

func (t *TypeConfig) descriptors() []property.FieldDescriptor {
	out := make([]property.FieldDescriptor, len(t.Fields))
	for i, f := range t.Fields {
		typ, _ := property.ParseFieldType(f.Type)
		out[i] = property.FieldDescriptor{Name: f.Name, Type: typ, Nullable: f.Nullable}
	}
	return out
}

func (e *EdgeConfig) name(i int) string {
	if e.Key != "" {
		return fmt.Sprintf("%q", e.Key)
	}
	return fmt.Sprintf("%d (%s -> %s)", i, e.From, e.To)
}

func parseKind(s string) (graph.EdgeKind, error) {
	switch s {
	case "", "directed":
		return graph.Directed, nil
	case "undirected":
		return graph.Undirected, nil
	default:
		return 0, fmt.Errorf("invalid edge kind %q", s)
	}
}

func checkFields(n *yaml.Node) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return errors.New("fields must be a mapping")
	}
	return nil
}

// fields converts a fields mapping into property fields. Integer literals
// are accepted for float fields declared at the same position.
func fields(n *yaml.Node, typ *TypeConfig) ([]property.Field, error) {
	if n.Kind == 0 {
		return nil, nil
	}

	out := make([]property.Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		raw := n.Content[i+1]

		var want property.FieldType
		if pos := i / 2; pos < len(typ.Fields) {
			want, _ = property.ParseFieldType(typ.Fields[pos].Type)
		}

		v, err := value(raw, want)
		if err != nil {
			return nil, fmt.Errorf("field %q (line %d): %w", name, raw.Line, err)
		}
		out = append(out, property.F(name, v))
	}
	return out, nil
}

func value(n *yaml.Node, want property.FieldType) (property.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return property.Value{}, errors.New("value must be a scalar")
	}

	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return property.Value{}, err
		}
		if want == property.FieldTypeFloat {
			return property.Float(float64(i)), nil
		}
		return property.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return property.Value{}, err
		}
		return property.Float(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return property.Value{}, err
		}
		return property.Bool(b), nil
	case "!!str":
		return property.String(n.Value), nil
	case "!!null":
		return property.Value{}, ErrNullValue
	default:
		return property.Value{}, fmt.Errorf("unsupported value tag %s", n.ShortTag())
	}
}
