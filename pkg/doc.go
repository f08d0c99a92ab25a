// Package pkg provides the core libraries for canopy graph visualization.
//
// # Overview
//
// Canopy turns node-link graph documents into mermaid flowchart text.
// The pkg directory is organized into five areas:
//
//  1. [mermaid] - The flowchart renderer (view contract, escaping, configuration)
//  2. [graph] - A concrete graph type with JSON serialization
//  3. [bt] - A small behavior tree runtime that renders through [mermaid]
//  4. [cache] - Diagram cache backends (file, Redis, null)
//  5. [errors], [observability], [buildinfo] - Shared application plumbing
//
// # Architecture
//
// The typical data flow through canopy:
//
//	JSON graph document
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [mermaid] package (render flowchart text)
//	         ↓
//	    mermaid text output (optionally cached by [cache])
//
// # Quick Start
//
// Decode a graph and render it:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/canopy/pkg/graph"
//	    "github.com/matzehuels/canopy/pkg/mermaid"
//	)
//
//	g, _ := graph.Import("graph.json")
//	_ = mermaid.New(g).Render(os.Stdout)
//
// Any type satisfying [mermaid.View] renders the same way; [bt] shows a
// non-trivial adapter that colors nodes by runtime status.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/mermaid    # Specific package
//	go test -run Example     # Examples only
//
// [mermaid]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/mermaid
// [graph]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/graph
// [bt]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/bt
// [cache]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/buildinfo
// [mermaid.View]: https://pkg.go.dev/github.com/matzehuels/canopy/pkg/mermaid#View
package pkg
