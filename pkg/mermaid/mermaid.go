// Package mermaid renders node-link graphs as mermaid flowchart text.
//
// # Overview
//
// A [Renderer] wraps any graph satisfying the [View] contract and writes
// a `flowchart TD` document: a header line, one indented declaration per
// node, then one per edge. The output is plain text for an external
// mermaid renderer; this package does no layout or rasterization.
//
// # Usage
//
// Render a graph with default settings:
//
//	r := mermaid.New(g)
//	err := r.Render(os.Stdout)
//
// Label verbosity is controlled by [Config] values, and arbitrary
// trailing attribute text (styling classes, status annotations) can be
// attached per node or edge with attribute getters:
//
//	r := mermaid.WithAttrGetters(g, nil,
//	    func(g mermaid.View, n mermaid.Node) string { return ":::highlight" },
//	    nil)
//
// Attribute getter output is appended verbatim, after the node's closing
// bracket or the edge's target index. It is not escaped; callers must
// return text that is already syntactically safe at that position.
//
// # Failure semantics
//
// Rendering fails only when the sink reports a write failure, which is
// propagated immediately and aborts the pass. Bytes already written stay
// written; callers needing all-or-nothing output should render into a
// private buffer first (String does exactly that). Malformed graphs, for
// example ones with duplicate indices, yield diagrams with undefined
// visual meaning but never an error.
package mermaid

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// indent prefixes every node and edge declaration line.
const indent = "    "

// edgeTokens holds the undirected and directed arrow tokens.
var edgeTokens = [2]string{"---", "-->"}

// NodeAttrFunc returns trailing attribute text for a node declaration.
// The returned text is appended verbatim after the closing bracket.
type NodeAttrFunc func(g View, n Node) string

// EdgeAttrFunc returns trailing attribute text for an edge declaration.
// The returned text is appended verbatim after the target index.
type EdgeAttrFunc func(g View, e Edge) string

// Renderer formats a graph as a mermaid flowchart document.
// It holds only references (graph, attribute getters) and the resolved
// configuration; it is cheap to construct per render and keeps no state
// between passes, so independent renders may run concurrently as long as
// the attribute getters are side-effect-free.
type Renderer struct {
	graph     View
	opts      options
	nodeAttrs NodeAttrFunc
	edgeAttrs EdgeAttrFunc
}

// New creates a Renderer with default configuration and no attribute
// getters.
func New(g View) *Renderer {
	return WithConfig(g)
}

// WithConfig creates a Renderer with the given configuration and no
// attribute getters.
func WithConfig(g View, configs ...Config) *Renderer {
	return WithAttrGetters(g, configs, nil, nil)
}

// WithAttrGetters creates a fully customized Renderer. Either getter may
// be nil, in which case no attribute text is emitted for that kind.
func WithAttrGetters(g View, configs []Config, nodeAttrs NodeAttrFunc, edgeAttrs EdgeAttrFunc) *Renderer {
	if nodeAttrs == nil {
		nodeAttrs = func(View, Node) string { return "" }
	}
	if edgeAttrs == nil {
		edgeAttrs = func(View, Edge) string { return "" }
	}
	return &Renderer{
		graph:     g,
		opts:      resolve(configs),
		nodeAttrs: nodeAttrs,
		edgeAttrs: edgeAttrs,
	}
}

// Render writes the flowchart document to w in a single synchronous
// pass: header, node declarations in iteration order, then edge
// declarations. The first write failure aborts the pass and is returned
// verbatim.
func (r *Renderer) Render(w io.Writer) error {
	if _, err := io.WriteString(w, "flowchart TD\n"); err != nil {
		return err
	}
	for _, n := range r.graph.Nodes() {
		if err := r.renderNode(w, n); err != nil {
			return err
		}
	}
	arrow := edgeTokens[0]
	if r.graph.Directed() {
		arrow = edgeTokens[1]
	}
	for _, e := range r.graph.Edges() {
		if err := r.renderEdge(w, e, arrow); err != nil {
			return err
		}
	}
	return nil
}

// renderNode emits one node declaration: `<idx>["<label>"]<attrs>`.
func (r *Renderer) renderNode(w io.Writer, n Node) error {
	g := r.graph
	idx := g.NodeIndex(n)
	if _, err := fmt.Fprintf(w, "%s%d[", indent, idx); err != nil {
		return err
	}
	if !r.opts.nodeNoLabel {
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
		if r.opts.nodeIndexLabel {
			if _, err := io.WriteString(w, strconv.Itoa(idx)); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(NewEscaper(w), "%v", n.Payload()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "]%s\n", r.nodeAttrs(g, n))
	return err
}

// renderEdge emits one edge declaration: `<src> <arrow> <dst><attrs>`,
// with an optional `|"<idx>"|` label between arrow and target.
//
// Edges have no default payload label; unless EdgeIndexLabel is set, any
// edge labeling must come from the edge attribute getter.
func (r *Renderer) renderEdge(w io.Writer, e Edge, arrow string) error {
	g := r.graph
	if _, err := fmt.Fprintf(w, "%s%d %s", indent, g.NodeIndex(e.Source()), arrow); err != nil {
		return err
	}
	if r.opts.edgeIndexLabel && !r.opts.edgeNoLabel {
		if _, err := fmt.Fprintf(w, `|"%d"|`, g.EdgeIndex(e)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, " %d%s\n", g.NodeIndex(e.Target()), r.edgeAttrs(g, e))
	return err
}

// String renders into a private buffer and returns the document.
// Rendering the same graph, configuration, and getters twice produces
// byte-identical output.
func (r *Renderer) String() string {
	var b strings.Builder
	_ = r.Render(&b) // a strings.Builder write cannot fail
	return b.String()
}
