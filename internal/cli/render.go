package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/internal/config"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/mermaid"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output         string // output file path, empty for stdout
	configPath     string // config file path, empty for the default location
	nodeIndexLabel bool   // label nodes with their index instead of the payload
	nodeNoLabel    bool   // omit node labels entirely
	edgeIndexLabel bool   // label edges with their index
	edgeNoLabel    bool   // omit edge labels entirely
}

// renderCommand creates the render command for generating mermaid text.
// It reads a JSON graph document from a file or stdin and writes the
// flowchart to a file or stdout.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph document as mermaid flowchart text",
		Long: `Render reads a JSON graph document and writes mermaid flowchart text.

The input is a file path, or "-" to read from stdin:

  canopy render graph.json
  cat graph.json | canopy render -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")
	cmd.Flags().BoolVar(&opts.nodeIndexLabel, "node-index-label", false, "label nodes with their index")
	cmd.Flags().BoolVar(&opts.nodeNoLabel, "node-no-label", false, "omit node labels")
	cmd.Flags().BoolVar(&opts.edgeIndexLabel, "edge-index-label", false, "label edges with their index")
	cmd.Flags().BoolVar(&opts.edgeNoLabel, "edge-no-label", false, "omit edge labels")

	return cmd
}

// runRender loads the graph, renders it, and writes the result.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	g, err := loadGraph(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	configs, err := renderConfigs(opts)
	if err != nil {
		return err
	}

	text := mermaid.WithConfig(g, configs...).String()

	if opts.output == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	p.done(fmt.Sprintf("Rendered %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))
	printFile(opts.output)
	return nil
}

// loadGraph reads a graph document from a file path, or stdin for "-".
func loadGraph(input string) (*graph.Graph, error) {
	if input == "-" {
		return graph.Read(os.Stdin)
	}
	return graph.Import(input)
}

// renderConfigs merges the configured default flags with the explicit
// command-line flags into renderer configuration values.
func renderConfigs(opts *renderOpts) ([]mermaid.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	var configs []mermaid.Config
	for _, name := range cfg.Render.Flags {
		if v, ok := mermaid.ParseConfig(name); ok {
			configs = append(configs, v)
		}
	}
	if opts.nodeIndexLabel {
		configs = append(configs, mermaid.NodeIndexLabel)
	}
	if opts.nodeNoLabel {
		configs = append(configs, mermaid.NodeNoLabel)
	}
	if opts.edgeIndexLabel {
		configs = append(configs, mermaid.EdgeIndexLabel)
	}
	if opts.edgeNoLabel {
		configs = append(configs, mermaid.EdgeNoLabel)
	}
	return configs, nil
}
