package mermaid_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/mermaid"
)

func ExampleRenderer_Render() {
	g := graph.New(true)
	a := g.AddNode("parse")
	b := g.AddNode("render")
	g.AddEdge(a, b, nil)

	r := mermaid.New(g)
	_ = r.Render(os.Stdout)
	// Output:
	// flowchart TD
	//     0["parse"]
	//     1["render"]
	//     0 --> 1
}

func ExampleWithAttrGetters() {
	g := graph.New(true)
	a := g.AddNode("fetch")
	b := g.AddNode("store")
	g.AddEdge(a, b, nil)

	// Attach a styling class to every node. The text is appended
	// verbatim after the node declaration.
	r := mermaid.WithAttrGetters(g, nil,
		func(_ mermaid.View, n mermaid.Node) string { return ":::active" },
		nil)

	fmt.Print(r)
	// Output:
	// flowchart TD
	//     0["fetch"]:::active
	//     1["store"]:::active
	//     0 --> 1
}

func ExampleWithConfig() {
	g := graph.New(false)
	a := g.AddNode("left")
	b := g.AddNode("right")
	g.AddEdge(a, b, nil)

	// Index labels replace payload text; the undirected arrow is "---".
	r := mermaid.WithConfig(g, mermaid.NodeIndexLabel)
	fmt.Print(r)
	// Output:
	// flowchart TD
	//     0["0"]
	//     1["1"]
	//     0 --- 1
}

func ExampleEscape() {
	fmt.Println(mermaid.Escape(`a "quoted" label` + "\nsecond line"))
	// Output:
	// a \"quoted\" label\lsecond line
}
