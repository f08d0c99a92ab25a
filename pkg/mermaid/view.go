package mermaid

// View is the capability set a graph must satisfy to be rendered.
// The renderer only reads through this interface and never mutates the
// underlying graph; any type that can enumerate its nodes and edges and
// map them to dense indices can be rendered, regardless of its internal
// representation.
type View interface {
	// Nodes returns all node references in iteration order.
	Nodes() []Node

	// Edges returns all edge references in iteration order.
	Edges() []Edge

	// NodeIndex maps a node reference to a dense non-negative integer
	// index. Indices must be stable and unique for the lifetime of a
	// single render pass.
	NodeIndex(n Node) int

	// EdgeIndex maps an edge reference to a dense non-negative integer
	// index, with the same stability guarantee as NodeIndex.
	EdgeIndex(e Edge) int

	// Directed reports whether edges render with the "-->" arrow token
	// instead of the undirected "---" token.
	Directed() bool
}

// Node is a node reference carrying an arbitrary payload.
// The payload is rendered as text (via fmt "%v") when it becomes a label.
type Node interface {
	Payload() any
}

// Edge is an edge reference exposing its endpoints and payload.
type Edge interface {
	Source() Node
	Target() Node
	Payload() any
}
