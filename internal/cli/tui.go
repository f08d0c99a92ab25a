package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/canopy/pkg/bt"
	"github.com/matzehuels/canopy/pkg/mermaid"
)

// demoTickInterval is the wall-clock delay between tree ticks.
const demoTickInterval = 500 * time.Millisecond

// demoDT is the simulated time passed to the tree per tick.
const demoDT = 0.5

// demoTickMsg advances the behavior tree by one tick.
type demoTickMsg time.Time

// demoModel is the bubbletea model for the behavior tree demo.
type demoModel struct {
	tree    *bt.Tree
	ticks   int
	status  bt.Status
	diagram string
	done    bool
}

// newDemoModel creates the demo model with an unticked tree.
func newDemoModel() demoModel {
	m := demoModel{tree: demoTree(), status: bt.Running}
	m.diagram = renderTree(m.tree)
	return m
}

// runDemo runs the demo TUI until the user quits.
func runDemo() error {
	_, err := tea.NewProgram(newDemoModel()).Run()
	return err
}

func demoTick() tea.Cmd {
	return tea.Tick(demoTickInterval, func(t time.Time) tea.Msg {
		return demoTickMsg(t)
	})
}

func (m demoModel) Init() tea.Cmd {
	return demoTick()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.tree.Reset()
			m.ticks = 0
			m.status = bt.Running
			m.done = false
			m.diagram = renderTree(m.tree)
			return m, demoTick()
		}
	case demoTickMsg:
		if m.done {
			return m, nil
		}
		m.status, _ = m.tree.Tick(demoDT, demoAction)
		m.ticks++
		m.diagram = renderTree(m.tree)
		if m.status != bt.Running {
			m.done = true
			return m, nil
		}
		return m, demoTick()
	}
	return m, nil
}

func (m demoModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Behavior Tree Demo"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r restart  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.diagram)
	b.WriteString("\n")

	line := fmt.Sprintf("tick %d %s %s", m.ticks, iconArrow, m.status)
	if m.done {
		line += StyleDim.Render("  (finished, press r to restart)")
	}
	b.WriteString(styleStatus.Render(line))
	b.WriteString("\n")

	return b.String()
}

// renderTree renders the tree's mermaid diagram with per-node status
// classes and the matching class definitions appended.
func renderTree(t *bt.Tree) string {
	r := mermaid.WithAttrGetters(t.View(), nil, bt.StatusClasses(t), nil)
	return r.String() + bt.StatusClassDefs
}
