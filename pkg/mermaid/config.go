package mermaid

// Config selects a label-verbosity toggle for the renderer.
//
// The set is open: values unknown to this version are silently ignored
// when resolving, so configurations written against a newer version keep
// working. Repeating a value is idempotent, and no combination is
// rejected.
type Config int

const (
	// NodeIndexLabel labels each node with its index instead of its payload.
	NodeIndexLabel Config = iota
	// EdgeIndexLabel labels each edge with its index.
	EdgeIndexLabel
	// EdgeNoLabel suppresses edge labels.
	EdgeNoLabel
	// NodeNoLabel suppresses node labels entirely.
	NodeNoLabel
)

// configNames maps flag spellings (as used by the CLI and the HTTP API)
// to Config values.
var configNames = map[string]Config{
	"node-index-label": NodeIndexLabel,
	"edge-index-label": EdgeIndexLabel,
	"edge-no-label":    EdgeNoLabel,
	"node-no-label":    NodeNoLabel,
}

// ParseConfig maps a flag spelling like "node-index-label" to its Config
// value. The second return is false for unrecognized names.
func ParseConfig(name string) (Config, bool) {
	c, ok := configNames[name]
	return c, ok
}

// String returns the flag spelling of c, or "unknown" for values this
// version does not define.
func (c Config) String() string {
	for name, v := range configNames {
		if v == c {
			return name
		}
	}
	return "unknown"
}

// options is the resolved configuration record.
type options struct {
	nodeIndexLabel bool
	edgeIndexLabel bool
	edgeNoLabel    bool
	nodeNoLabel    bool
}

// resolve folds an ordered config list into a boolean record.
// Unrecognized values are dropped without error.
func resolve(configs []Config) options {
	var o options
	for _, c := range configs {
		switch c {
		case NodeIndexLabel:
			o.nodeIndexLabel = true
		case EdgeIndexLabel:
			o.edgeIndexLabel = true
		case EdgeNoLabel:
			o.edgeNoLabel = true
		case NodeNoLabel:
			o.nodeNoLabel = true
		}
	}
	return o
}
