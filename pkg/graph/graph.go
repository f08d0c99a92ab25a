// Package graph provides an in-memory node-link graph with arbitrary
// payloads. It is the reference implementation of the [mermaid.View]
// contract and the interchange type for the CLI and the HTTP service.
package graph

import "github.com/matzehuels/canopy/pkg/mermaid"

// Graph is a node-link graph holding nodes and edges in insertion order.
// Node and edge indices are dense and stable: the first AddNode call
// yields index 0, the second index 1, and so on.
//
// The zero value is an empty undirected graph; use [New] to choose
// directedness. Graph is not safe for concurrent mutation, but any
// number of render passes may read it concurrently once construction is
// done.
type Graph struct {
	directed bool
	nodes    []*Node
	edges    []*Edge
}

// Node is a vertex with a stable index and an arbitrary payload.
type Node struct {
	index   int
	payload any
}

// Index returns the node's dense index within its graph.
func (n *Node) Index() int { return n.index }

// Payload returns the node's payload.
func (n *Node) Payload() any { return n.payload }

// Edge is a directed or undirected connection between two nodes of the
// same graph.
type Edge struct {
	index    int
	from, to *Node
	payload  any
}

// Index returns the edge's dense index within its graph.
func (e *Edge) Index() int { return e.index }

// From returns the source node.
func (e *Edge) From() *Node { return e.from }

// To returns the target node.
func (e *Edge) To() *Node { return e.to }

// Source returns the source node as a mermaid node reference.
func (e *Edge) Source() mermaid.Node { return e.from }

// Target returns the target node as a mermaid node reference.
func (e *Edge) Target() mermaid.Node { return e.to }

// Payload returns the edge's payload.
func (e *Edge) Payload() any { return e.payload }

// New creates an empty graph. Directedness only affects how edges are
// rendered; the in-memory representation is identical either way.
func New(directed bool) *Graph {
	return &Graph{directed: directed}
}

// AddNode appends a node with the given payload and returns its
// reference. Indices are assigned in insertion order.
func (g *Graph) AddNode(payload any) *Node {
	n := &Node{index: len(g.nodes), payload: payload}
	g.nodes = append(g.nodes, n)
	return n
}

// AddEdge appends an edge between two nodes of this graph and returns
// its reference. The endpoints must have been created by AddNode on the
// same graph; no validation is performed.
func (g *Graph) AddEdge(from, to *Node, payload any) *Edge {
	e := &Edge{index: len(g.edges), from: from, to: to, payload: payload}
	g.edges = append(g.edges, e)
	return e
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all node references in insertion order.
func (g *Graph) Nodes() []mermaid.Node {
	out := make([]mermaid.Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n
	}
	return out
}

// Edges returns all edge references in insertion order.
func (g *Graph) Edges() []mermaid.Edge {
	out := make([]mermaid.Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = e
	}
	return out
}

// NodeIndex maps a node reference back to its dense index. References
// that did not originate from this graph map to -1.
func (g *Graph) NodeIndex(n mermaid.Node) int {
	if node, ok := n.(*Node); ok {
		return node.index
	}
	return -1
}

// EdgeIndex maps an edge reference back to its dense index. References
// that did not originate from this graph map to -1.
func (g *Graph) EdgeIndex(e mermaid.Edge) int {
	if edge, ok := e.(*Edge); ok {
		return edge.index
	}
	return -1
}

// Directed reports whether the graph renders with directed arrows.
func (g *Graph) Directed() bool { return g.directed }

// Ensure Graph satisfies the renderer contract.
var _ mermaid.View = (*Graph)(nil)
