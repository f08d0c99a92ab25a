package bt

import "testing"

// countingAction increments or decrements an accumulator, mirroring a
// minimal state machine driven by the tree.
func countingAction(acc *int) ActionFunc {
	return func(name string, dt float64) (Status, float64) {
		switch name {
		case "inc":
			*acc++
		case "dec":
			*acc--
		}
		return Success, dt
	}
}

func TestTickSequenceWithBlackboard(t *testing.T) {
	seq := Sequence(
		Wait(1.0), Action("inc"),
		Wait(1.0), Action("inc"),
		Wait(0.5), Action("dec"),
	)
	tree := New(seq, map[string]any{})
	acc := 0

	tick := func() int {
		tree.Tick(0.5, countingAction(&acc))
		bb := tree.Blackboard()
		if _, ok := bb.Get("count"); ok {
			bb.Set("count", acc)
		} else {
			bb.Set("count", 0)
		}
		return acc
	}

	want := []int{0, 1, 1, 2, 1}
	for i, w := range want {
		if got := tick(); got != w {
			t.Errorf("tick %d: acc = %d, want %d", i+1, got, w)
		}
	}

	count, ok := tree.Blackboard().Get("count")
	if !ok || count != 1 {
		t.Errorf("blackboard count = %v, want 1", count)
	}
}

func TestWaitCarriesSurplus(t *testing.T) {
	// A single large tick drives the whole sequence to completion: the
	// surplus after each wait flows into the following children.
	seq := Sequence(Wait(1.0), Action("inc"), Wait(0.5), Action("inc"))
	tree := New(seq, nil)
	acc := 0

	st, rest := tree.Tick(2.0, countingAction(&acc))
	if st != Success {
		t.Fatalf("status = %v, want success", st)
	}
	if acc != 2 {
		t.Errorf("acc = %d, want 2", acc)
	}
	if rest != 0.5 {
		t.Errorf("leftover dt = %v, want 0.5", rest)
	}
}

func TestSequenceFailsFast(t *testing.T) {
	calls := 0
	tree := New(Sequence(Action("fail"), Action("after")), nil)
	st, _ := tree.Tick(1.0, func(name string, dt float64) (Status, float64) {
		calls++
		if name == "fail" {
			return Failure, dt
		}
		return Success, dt
	})
	if st != Failure {
		t.Errorf("status = %v, want failure", st)
	}
	if calls != 1 {
		t.Errorf("actions invoked = %d, want 1", calls)
	}
}

func TestSelect(t *testing.T) {
	var invoked []string
	record := func(name string, dt float64) (Status, float64) {
		invoked = append(invoked, name)
		if name == "works" {
			return Success, dt
		}
		return Failure, dt
	}

	tree := New(Select(Action("broken"), Action("works"), Action("spare")), nil)
	st, _ := tree.Tick(1.0, record)
	if st != Success {
		t.Errorf("status = %v, want success", st)
	}
	if len(invoked) != 2 || invoked[0] != "broken" || invoked[1] != "works" {
		t.Errorf("invoked = %v, want [broken works]", invoked)
	}
}

func TestSelectAllFail(t *testing.T) {
	fail := func(string, float64) (Status, float64) { return Failure, 0 }
	tree := New(Select(Action("a"), Action("b")), nil)
	if st, _ := tree.Tick(1.0, fail); st != Failure {
		t.Errorf("status = %v, want failure", st)
	}
}

func TestInvert(t *testing.T) {
	succeed := func(string, float64) (Status, float64) { return Success, 0 }
	tree := New(Invert(Action("a")), nil)
	if st, _ := tree.Tick(1.0, succeed); st != Failure {
		t.Errorf("Invert(success) = %v, want failure", st)
	}

	fail := func(string, float64) (Status, float64) { return Failure, 0 }
	tree = New(Invert(Action("a")), nil)
	if st, _ := tree.Tick(1.0, fail); st != Success {
		t.Errorf("Invert(failure) = %v, want success", st)
	}
}

func TestInvertRunningPassesThrough(t *testing.T) {
	tree := New(Invert(Wait(10)), nil)
	if st, _ := tree.Tick(1.0, nil); st != Running {
		t.Errorf("Invert(running) = %v, want running", st)
	}
}

func TestAlwaysSucceed(t *testing.T) {
	fail := func(string, float64) (Status, float64) { return Failure, 0 }
	tree := New(AlwaysSucceed(Action("a")), nil)
	if st, _ := tree.Tick(1.0, fail); st != Success {
		t.Errorf("AlwaysSucceed(failure) = %v, want success", st)
	}
}

func TestTerminalStatusSticks(t *testing.T) {
	succeed := func(string, float64) (Status, float64) { return Success, 0 }
	tree := New(Sequence(Action("a")), nil)
	tree.Tick(1.0, succeed)

	calls := 0
	st, _ := tree.Tick(1.0, func(string, float64) (Status, float64) {
		calls++
		return Success, 0
	})
	if st != Success || calls != 0 {
		t.Errorf("completed tree should return success without re-running (status %v, calls %d)", st, calls)
	}
}

func TestReset(t *testing.T) {
	succeed := func(string, float64) (Status, float64) { return Success, 0 }
	tree := New(Sequence(Action("a")), nil)
	tree.Tick(1.0, succeed)
	tree.Reset()

	calls := 0
	tree.Tick(1.0, func(string, float64) (Status, float64) {
		calls++
		return Success, 0
	})
	if calls != 1 {
		t.Errorf("reset tree should re-run actions, got %d calls", calls)
	}
}

func TestBlackboardSeedCopied(t *testing.T) {
	seed := map[string]any{"k": 1}
	tree := New(Action("a"), seed)
	seed["k"] = 2

	v, _ := tree.Blackboard().Get("k")
	if v != 1 {
		t.Errorf("blackboard should copy the seed map, got %v", v)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Running, "running"},
		{Success, "success"},
		{Failure, "failure"},
		{Status(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
