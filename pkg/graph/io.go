package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Doc is the canonical serialization format for graphs.
// Used for files, API requests, and storage backends. Node payloads
// round-trip as their label text; edges reference nodes by index.
type Doc struct {
	Directed bool      `json:"directed" bson:"directed"`
	Nodes    []NodeDoc `json:"nodes" bson:"nodes"`
	Edges    []EdgeDoc `json:"edges" bson:"edges"`
}

// NodeDoc is the serialized form of a node.
type NodeDoc struct {
	Label string `json:"label" bson:"label"`
}

// EdgeDoc is the serialized form of an edge. From and To are node
// indices in the Nodes slice.
type EdgeDoc struct {
	From  int    `json:"from" bson:"from"`
	To    int    `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// ToDoc converts a graph to its serialization format. Payloads are
// rendered as text with fmt "%v".
func ToDoc(g *Graph) Doc {
	out := Doc{
		Directed: g.directed,
		Nodes:    make([]NodeDoc, len(g.nodes)),
		Edges:    make([]EdgeDoc, len(g.edges)),
	}
	for i, n := range g.nodes {
		out.Nodes[i] = NodeDoc{Label: fmt.Sprintf("%v", n.payload)}
	}
	for i, e := range g.edges {
		ed := EdgeDoc{From: e.from.index, To: e.to.index}
		if e.payload != nil {
			ed.Label = fmt.Sprintf("%v", e.payload)
		}
		out.Edges[i] = ed
	}
	return out
}

// FromDoc converts a serialized document to a graph. Node payloads
// become their label strings. Returns an error if an edge references a
// node index outside the document.
func FromDoc(doc Doc) (*Graph, error) {
	g := New(doc.Directed)
	for _, nd := range doc.Nodes {
		g.AddNode(nd.Label)
	}
	for i, ed := range doc.Edges {
		if ed.From < 0 || ed.From >= len(g.nodes) {
			return nil, fmt.Errorf("edge %d: unknown source node %d", i, ed.From)
		}
		if ed.To < 0 || ed.To >= len(g.nodes) {
			return nil, fmt.Errorf("edge %d: unknown target node %d", i, ed.To)
		}
		var payload any
		if ed.Label != "" {
			payload = ed.Label
		}
		g.AddEdge(g.nodes[ed.From], g.nodes[ed.To], payload)
	}
	return g, nil
}

// Read decodes a JSON graph document from r.
//
// The input must be a JSON object with a "directed" flag and "nodes" and
// "edges" arrays:
//
//	{
//	  "directed": true,
//	  "nodes": [{"label": "A"}, {"label": "B"}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Read returns the same validation errors as [FromDoc] for edges that
// reference unknown node indices. It does not close r.
func Read(r io.Reader) (*Graph, error) {
	var doc Doc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDoc(doc)
}

// Write encodes a graph as indented JSON to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDoc(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Import reads a JSON file at path and returns the decoded graph.
func Import(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Export writes a graph to a JSON file at path.
func Export(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}
