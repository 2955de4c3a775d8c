package task

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/trusty-cli/trusty/types"
)

// chain builds 1 <- 2 <- 3 ... where each task depends on the previous.
func chain(t *testing.T, n int) *Graph {
	t.Helper()
	g := NewGraph()
	for i := 1; i <= n; i++ {
		d := Draft{Title: "task"}
		if i > 1 {
			d.Dependencies = []int{i - 1}
		}
		mustAdd(t, g, d)
	}
	return g
}

func TestAddDependencyRejectsSelfLoop(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	err := g.AddDependency(a.ID, a.ID)
	if !types.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddDependencyRejectsDirectCycle(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	b := mustAdd(t, g, Draft{Title: "b"})
	if err := g.AddDependency(b.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := g.AddDependency(a.ID, b.ID); !types.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddDependencyRejectsTransitiveCycle(t *testing.T) {
	g := chain(t, 4) // 4 -> 3 -> 2 -> 1

	before := g.snapshot()
	err := g.AddDependency(1, 4)
	if !types.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff(before.tasks, g.tasks); diff != "" {
		t.Errorf("graph changed by rejected edge (-want +got):\n%s", diff)
	}
}

func TestAddDependencyUnknownTasks(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	if err := g.AddDependency(a.ID, 99); !types.IsValidation(err) {
		t.Fatalf("expected validation error for unknown dep, got %v", err)
	}
	if err := g.AddDependency(99, a.ID); !types.IsValidation(err) {
		t.Fatalf("expected validation error for unknown task, got %v", err)
	}
}

func TestAddDependencyAllowsDiamond(t *testing.T) {
	// d depends on b and c, both depending on a. A diamond shares a node
	// but has no cycle.
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	b := mustAdd(t, g, Draft{Title: "b", Dependencies: []int{a.ID}})
	c := mustAdd(t, g, Draft{Title: "c", Dependencies: []int{a.ID}})
	d := mustAdd(t, g, Draft{Title: "d", Dependencies: []int{b.ID}})
	if err := g.AddDependency(d.ID, c.ID); err != nil {
		t.Fatalf("diamond rejected: %v", err)
	}
	if err := g.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestAddDependencyIsIdempotent(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	b := mustAdd(t, g, Draft{Title: "b"})
	for i := 0; i < 2; i++ {
		if err := g.AddDependency(b.ID, a.ID); err != nil {
			t.Fatalf("AddDependency pass %d: %v", i+1, err)
		}
	}
	got, _ := g.Get(b.ID)
	if len(got.Dependencies) != 1 {
		t.Fatalf("Dependencies = %v, want exactly one edge", got.Dependencies)
	}
	gotA, _ := g.Get(a.ID)
	if len(gotA.Dependents) != 1 {
		t.Fatalf("Dependents = %v, want exactly one edge", gotA.Dependents)
	}
}

func TestCheckDetectsAsymmetricEdges(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	b := mustAdd(t, g, Draft{Title: "b"})

	// Simulate a corrupt file: b records a dependency a never heard of.
	bt := g.tasks[b.ID]
	bt.Dependencies = []int{a.ID}
	g.tasks[b.ID] = bt

	if err := g.Check(); err == nil {
		t.Fatal("Check accepted asymmetric dependency edges")
	}
}

func TestCheckDetectsDependencyCycle(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	b := mustAdd(t, g, Draft{Title: "b"})

	at := g.tasks[a.ID]
	bt := g.tasks[b.ID]
	at.Dependencies = []int{b.ID}
	at.Dependents = []int{b.ID}
	bt.Dependencies = []int{a.ID}
	bt.Dependents = []int{a.ID}
	g.tasks[a.ID] = at
	g.tasks[b.ID] = bt

	if err := g.Check(); err == nil {
		t.Fatal("Check accepted a dependency cycle")
	}
}

func TestCheckDetectsContainmentCycle(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	b := mustAdd(t, g, Draft{Title: "b"})

	aID, bID := a.ID, b.ID
	at := g.tasks[aID]
	bt := g.tasks[bID]
	at.ParentID = &bID
	at.SubtaskIDs = []int{bID}
	bt.ParentID = &aID
	bt.SubtaskIDs = []int{aID}
	g.tasks[aID] = at
	g.tasks[bID] = bt

	if err := g.Check(); err == nil {
		t.Fatal("Check accepted a containment cycle")
	}
}

func TestCheckAcceptsValidGraph(t *testing.T) {
	g := chain(t, 3)
	parent := mustAdd(t, g, Draft{Title: "parent"})
	mustAddSubtask(t, g, parent.ID, Draft{Title: "child"})
	if err := g.Check(); err != nil {
		t.Fatalf("Check rejected a valid graph: %v", err)
	}
}

func TestCheckDetectsDanglingSubtaskRef(t *testing.T) {
	g := NewGraph()
	a := mustAdd(t, g, Draft{Title: "a"})
	at := g.tasks[a.ID]
	at.SubtaskIDs = []int{42}
	g.tasks[a.ID] = at
	if err := g.Check(); err == nil {
		t.Fatal("Check accepted a dangling subtask reference")
	}
}
