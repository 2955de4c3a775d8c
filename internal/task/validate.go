package task

import (
	"fmt"
	"slices"

	"github.com/trusty-cli/trusty/types"
)

// cycleError builds the ValidationError reported when an edge would close a
// dependency or containment cycle.
func cycleError(from, to int) error {
	return types.NewValidationError("cycle",
		fmt.Sprintf("adding edge %d -> %d would create a cycle", from, to), from, to)
}

// ValidateAddDependency checks that the edge taskID -> depID (taskID depends
// on depID) can be added: both ids exist, the edge is not a self-loop, and
// depID cannot already reach taskID through existing dependency edges.
// Check-then-act is safe because one command owns the graph exclusively.
func (g *Graph) ValidateAddDependency(taskID, depID int) error {
	if _, ok := g.tasks[taskID]; !ok {
		return unknownTask(taskID)
	}
	if _, ok := g.tasks[depID]; !ok {
		return unknownTask(depID)
	}
	if taskID == depID {
		return selfDependency(taskID)
	}
	if g.dependsOn(depID, taskID) {
		return cycleError(taskID, depID)
	}
	return nil
}

// dependsOn reports whether from can reach to by following dependency
// edges. Iterative DFS; graphs are small (hundreds to low thousands).
func (g *Graph) dependsOn(from, to int) bool {
	visited := make(map[int]bool)
	stack := []int{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		if t, ok := g.tasks[id]; ok {
			stack = append(stack, t.Dependencies...)
		}
	}
	return false
}

// validateReparent checks that newParent is not child itself or one of
// child's descendants, which would fold the containment forest into a cycle.
func (g *Graph) validateReparent(childID, newParentID int) error {
	if _, ok := g.tasks[childID]; !ok {
		return unknownTask(childID)
	}
	if _, ok := g.tasks[newParentID]; !ok {
		return unknownTask(newParentID)
	}
	if childID == newParentID || g.isDescendant(newParentID, childID) {
		return cycleError(childID, newParentID)
	}
	return nil
}

// isDescendant reports whether id is in the subtree rooted at rootID.
func (g *Graph) isDescendant(id, rootID int) bool {
	root, ok := g.tasks[rootID]
	if !ok {
		return false
	}
	for _, cid := range root.SubtaskIDs {
		if cid == id || g.isDescendant(id, cid) {
			return true
		}
	}
	return false
}

// Check audits the whole graph: every edge endpoint exists, edge lists are
// symmetric, containment is a forest, and the dependency relation is
// acyclic. It runs after load; a failure means the on-disk state is corrupt
// and is reported as such rather than auto-repaired.
func (g *Graph) Check() error {
	for id, t := range g.tasks {
		if t.ID != id {
			return fmt.Errorf("task keyed as %d carries id %d", id, t.ID)
		}
		for _, depID := range t.Dependencies {
			dep, ok := g.tasks[depID]
			if !ok {
				return fmt.Errorf("task %d depends on missing task %d", id, depID)
			}
			if !slices.Contains(dep.Dependents, id) {
				return fmt.Errorf("task %d missing dependent back-edge to %d", depID, id)
			}
		}
		for _, depentID := range t.Dependents {
			depent, ok := g.tasks[depentID]
			if !ok {
				return fmt.Errorf("task %d lists missing dependent %d", id, depentID)
			}
			if !slices.Contains(depent.Dependencies, id) {
				return fmt.Errorf("task %d missing dependency back-edge to %d", depentID, id)
			}
		}
		for _, cid := range t.SubtaskIDs {
			child, ok := g.tasks[cid]
			if !ok {
				return fmt.Errorf("task %d lists missing subtask %d", id, cid)
			}
			if child.ParentID == nil || *child.ParentID != id {
				return fmt.Errorf("task %d is listed as subtask of %d but does not point back", cid, id)
			}
		}
		if t.ParentID != nil {
			parent, ok := g.tasks[*t.ParentID]
			if !ok {
				return fmt.Errorf("task %d has missing parent %d", id, *t.ParentID)
			}
			if !slices.Contains(parent.SubtaskIDs, id) {
				return fmt.Errorf("task %d points at parent %d which does not list it", id, *t.ParentID)
			}
		}
	}
	if err := g.checkDependencyDAG(); err != nil {
		return err
	}
	return g.checkContainmentForest()
}

// checkDependencyDAG runs a DFS with a recursion stack over dependency
// edges to detect cycles.
func (g *Graph) checkDependencyDAG() error {
	visited := make(map[int]bool)
	onStack := make(map[int]bool)

	var visit func(id int) error
	visit = func(id int) error {
		visited[id] = true
		onStack[id] = true
		for _, depID := range g.tasks[id].Dependencies {
			if onStack[depID] {
				return fmt.Errorf("dependency cycle involving tasks %d and %d", id, depID)
			}
			if !visited[depID] {
				if err := visit(depID); err != nil {
					return err
				}
			}
		}
		onStack[id] = false
		return nil
	}

	for id := range g.tasks {
		if !visited[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkContainmentForest walks parent pointers from every node; revisiting
// a node on the current walk means a containment cycle.
func (g *Graph) checkContainmentForest() error {
	for id := range g.tasks {
		seen := map[int]bool{id: true}
		cur := g.tasks[id]
		for cur.ParentID != nil {
			pid := *cur.ParentID
			if seen[pid] {
				return fmt.Errorf("containment cycle involving task %d", pid)
			}
			seen[pid] = true
			next, ok := g.tasks[pid]
			if !ok {
				break // missing parent already reported by Check
			}
			cur = next
		}
	}
	return nil
}
