package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/bt"
)

// demoCommand creates the demo command: an animated behavior tree whose
// mermaid diagram updates live as the tree ticks.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run an animated behavior tree rendering demo",
		Long: `Demo ticks a small behavior tree and re-renders its mermaid diagram
after every tick, coloring each node by status. Paste the final diagram
into any mermaid renderer to see the same picture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

// demoTree builds the behavior tree shown by the demo.
func demoTree() *bt.Tree {
	root := bt.Sequence(
		bt.Wait(1),
		bt.Action("scan"),
		bt.Select(
			bt.Invert(bt.Action("probe")),
			bt.Wait(0.5),
		),
		bt.AlwaysSucceed(bt.Action("report")),
	)
	return bt.New(root, map[string]any{"runs": 0})
}

// demoAction resolves the demo's action leaves. Every named action
// succeeds immediately, so the interesting paths come from the
// decorators around them.
func demoAction(name string, dt float64) (bt.Status, float64) {
	return bt.Success, dt
}
