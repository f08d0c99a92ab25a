package bt

import "github.com/matzehuels/canopy/pkg/mermaid"

// treeNode is a mermaid node reference wrapping a behavior.
type treeNode struct {
	b   *Behavior
	idx int
}

// Payload returns the behavior's label text.
func (n treeNode) Payload() any { return n.b.Label() }

// treeEdge is a parent→child connection in the tree topology.
type treeEdge struct {
	from, to treeNode
	idx      int
}

func (e treeEdge) Source() mermaid.Node { return e.from }
func (e treeEdge) Target() mermaid.Node { return e.to }
func (e treeEdge) Payload() any         { return nil }

// treeView adapts a tree's topology to the renderer contract. Nodes are
// indexed in preorder, edges in traversal order; the view is directed.
type treeView struct {
	nodes []treeNode
	edges []treeEdge
}

// View returns a read-only mermaid view of the tree's topology. The
// view reflects the structure only; combine it with [StatusClasses] to
// overlay runtime state.
func (t *Tree) View() mermaid.View {
	v := &treeView{}
	v.walk(t.root)
	return v
}

func (v *treeView) walk(b *Behavior) treeNode {
	n := treeNode{b: b, idx: len(v.nodes)}
	v.nodes = append(v.nodes, n)
	for _, child := range b.children {
		c := v.walk(child)
		v.edges = append(v.edges, treeEdge{from: n, to: c, idx: len(v.edges)})
	}
	return n
}

func (v *treeView) Nodes() []mermaid.Node {
	out := make([]mermaid.Node, len(v.nodes))
	for i, n := range v.nodes {
		out[i] = n
	}
	return out
}

func (v *treeView) Edges() []mermaid.Edge {
	out := make([]mermaid.Edge, len(v.edges))
	for i, e := range v.edges {
		out[i] = e
	}
	return out
}

func (v *treeView) NodeIndex(n mermaid.Node) int {
	if tn, ok := n.(treeNode); ok {
		return tn.idx
	}
	return -1
}

func (v *treeView) EdgeIndex(e mermaid.Edge) int {
	if te, ok := e.(treeEdge); ok {
		return te.idx
	}
	return -1
}

func (v *treeView) Directed() bool { return true }

var _ mermaid.View = (*treeView)(nil)

// StatusClassDefs is the classDef block matching [StatusClasses] output.
// Append it after a rendered flowchart to color nodes by status.
const StatusClassDefs = "    classDef bt-running fill:#fde68a,stroke:#b45309\n" +
	"    classDef bt-success fill:#bbf7d0,stroke:#15803d\n" +
	"    classDef bt-failure fill:#fecaca,stroke:#b91c1c\n"

// StatusClasses returns a node attribute getter that tags each behavior
// with the mermaid class for its status from the most recent tick.
// Nodes the tree has not reached yet get no class.
func StatusClasses(t *Tree) mermaid.NodeAttrFunc {
	return func(_ mermaid.View, n mermaid.Node) string {
		tn, ok := n.(treeNode)
		if !ok {
			return ""
		}
		s, ok := t.state[tn.b]
		if !ok || !s.ticked {
			return ""
		}
		return ":::bt-" + s.status.String()
	}
}
