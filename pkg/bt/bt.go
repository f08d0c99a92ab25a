// Package bt implements a compact synchronous behavior tree with a
// shared blackboard. Trees are described declaratively with the node
// constructors ([Action], [Wait], [Sequence], [Select], [Invert],
// [AlwaysSucceed]) and advanced with [Tree.Tick]; the topology can be
// rendered as a mermaid flowchart via [Tree.View], with per-node status
// styling from [StatusClasses].
package bt

import "fmt"

// Status is the result of ticking a behavior.
type Status int

const (
	// Running means the behavior needs more time.
	Running Status = iota
	// Success means the behavior completed successfully.
	Success
	// Failure means the behavior completed unsuccessfully.
	Failure
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

type kind int

const (
	kindAction kind = iota
	kindWait
	kindSequence
	kindSelect
	kindInvert
	kindAlwaysSucceed
)

// Behavior is one node of a behavior tree description. Behaviors are
// built with the package constructors and composed into a tree; each
// Behavior value may appear at most once per tree, since runtime state
// is keyed by node identity.
type Behavior struct {
	kind     kind
	name     string  // action name
	seconds  float64 // wait duration
	children []*Behavior
}

// Action creates a leaf that invokes the named action when ticked.
func Action(name string) *Behavior {
	return &Behavior{kind: kindAction, name: name}
}

// Wait creates a leaf that succeeds once the given number of seconds of
// tick time has accumulated. Time left over after completion flows into
// the next sibling within the same tick.
func Wait(seconds float64) *Behavior {
	return &Behavior{kind: kindWait, seconds: seconds}
}

// Sequence creates a node that runs its children in order, failing fast
// on the first failure and succeeding when all children have succeeded.
func Sequence(children ...*Behavior) *Behavior {
	return &Behavior{kind: kindSequence, children: children}
}

// Select creates a node that runs its children in order until one
// succeeds, failing only when every child has failed.
func Select(children ...*Behavior) *Behavior {
	return &Behavior{kind: kindSelect, children: children}
}

// Invert creates a decorator that swaps Success and Failure of its
// child. Running passes through.
func Invert(child *Behavior) *Behavior {
	return &Behavior{kind: kindInvert, children: []*Behavior{child}}
}

// AlwaysSucceed creates a decorator that reports Success whenever its
// child completes, regardless of the child's outcome.
func AlwaysSucceed(child *Behavior) *Behavior {
	return &Behavior{kind: kindAlwaysSucceed, children: []*Behavior{child}}
}

// Label returns the display text for the node, used as the diagram
// payload when the tree is rendered.
func (b *Behavior) Label() string {
	switch b.kind {
	case kindAction:
		return b.name
	case kindWait:
		return fmt.Sprintf("Wait(%g)", b.seconds)
	case kindSequence:
		return "Sequence"
	case kindSelect:
		return "Select"
	case kindInvert:
		return "Invert"
	case kindAlwaysSucceed:
		return "AlwaysSucceed"
	}
	return ""
}

// Blackboard is the tree's shared key-value store. Actions and the
// surrounding application use it to exchange state across ticks.
type Blackboard struct {
	db map[string]any
}

// Get returns the value stored under key.
func (bb *Blackboard) Get(key string) (any, bool) {
	v, ok := bb.db[key]
	return v, ok
}

// Set stores a value under key, replacing any previous value.
func (bb *Blackboard) Set(key string, v any) {
	bb.db[key] = v
}

// Delete removes the value stored under key.
func (bb *Blackboard) Delete(key string) {
	delete(bb.db, key)
}

// Len returns the number of stored keys.
func (bb *Blackboard) Len() int { return len(bb.db) }

// ActionFunc executes the named action with the tick time available to
// it and returns the resulting status plus the unconsumed time.
type ActionFunc func(name string, dt float64) (Status, float64)

// nodeState is the per-node runtime state of one tree instance.
type nodeState struct {
	elapsed float64 // accumulated wait time
	cursor  int     // next child for sequences and selects
	status  Status  // outcome of the most recent tick that reached this node
	ticked  bool    // whether the node has been reached at all
}

// Tree binds a behavior description to runtime state and a blackboard.
// A Tree is not safe for concurrent use.
type Tree struct {
	root  *Behavior
	bb    *Blackboard
	state map[*Behavior]*nodeState
}

// New creates a tree for the given root behavior, seeding the blackboard
// with a copy of the provided map (which may be nil).
func New(root *Behavior, blackboard map[string]any) *Tree {
	db := make(map[string]any, len(blackboard))
	for k, v := range blackboard {
		db[k] = v
	}
	return &Tree{
		root:  root,
		bb:    &Blackboard{db: db},
		state: make(map[*Behavior]*nodeState),
	}
}

// Blackboard returns the tree's blackboard.
func (t *Tree) Blackboard() *Blackboard { return t.bb }

// Tick advances the tree by dt seconds, invoking action for every action
// leaf that is reached. Once the root has completed, further ticks
// return the terminal status without re-running anything; use [Tree.Reset]
// to run the tree again.
func (t *Tree) Tick(dt float64, action ActionFunc) (Status, float64) {
	return t.tick(t.root, dt, action)
}

// Reset clears all runtime state so the tree can run from the start.
// The blackboard is left untouched.
func (t *Tree) Reset() {
	t.state = make(map[*Behavior]*nodeState)
}

func (t *Tree) node(b *Behavior) *nodeState {
	s, ok := t.state[b]
	if !ok {
		s = &nodeState{}
		t.state[b] = s
	}
	return s
}

func (t *Tree) tick(b *Behavior, dt float64, action ActionFunc) (Status, float64) {
	s := t.node(b)
	s.ticked = true

	switch b.kind {
	case kindAction:
		st, rest := action(b.name, dt)
		s.status = st
		return st, rest

	case kindWait:
		s.elapsed += dt
		if s.elapsed >= b.seconds {
			s.status = Success
			// Surplus from this tick flows to the next sibling.
			return Success, s.elapsed - b.seconds
		}
		s.status = Running
		return Running, 0

	case kindSequence:
		for s.cursor < len(b.children) {
			st, rest := t.tick(b.children[s.cursor], dt, action)
			if st == Running {
				s.status = Running
				return Running, 0
			}
			if st == Failure {
				s.status = Failure
				return Failure, rest
			}
			s.cursor++
			dt = rest
		}
		s.status = Success
		return Success, dt

	case kindSelect:
		for s.cursor < len(b.children) {
			st, rest := t.tick(b.children[s.cursor], dt, action)
			if st == Running {
				s.status = Running
				return Running, 0
			}
			if st == Success {
				s.status = Success
				return Success, rest
			}
			s.cursor++
			dt = rest
		}
		s.status = Failure
		return Failure, dt

	case kindInvert:
		st, rest := t.tick(b.children[0], dt, action)
		switch st {
		case Success:
			st = Failure
		case Failure:
			st = Success
		}
		s.status = st
		return st, rest

	case kindAlwaysSucceed:
		st, rest := t.tick(b.children[0], dt, action)
		if st != Running {
			st = Success
		}
		s.status = st
		return st, rest
	}

	s.status = Failure
	return Failure, dt
}
