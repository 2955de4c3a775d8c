// Package task implements the task graph engine: an in-memory arena of
// tasks plus the containment (parent/subtask) and dependency relations,
// with validation, status aggregation, and next-task recommendation.
package task

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/trusty-cli/trusty/models"
	"github.com/trusty-cli/trusty/types"
)

// Graph is the in-memory task store. Tasks are held by value in an arena
// keyed by id; edges are id slices on the tasks themselves, kept symmetric
// by the mutation methods (Dependencies <-> Dependents, ParentID <->
// SubtaskIDs). The graph is owned by a single command invocation; there is
// no internal locking.
type Graph struct {
	tasks  map[int]models.Task
	nextID int
}

// NewGraph returns an empty graph. Ids start at 1.
func NewGraph() *Graph {
	return &Graph{tasks: make(map[int]models.Task), nextID: 1}
}

// FromTasks builds a graph from a loaded task list and high-water id mark.
// It does not validate; callers run Check afterwards and treat a failure as
// corrupt storage.
func FromTasks(tasks []models.Task, nextID int) *Graph {
	g := &Graph{tasks: make(map[int]models.Task, len(tasks)), nextID: nextID}
	for _, t := range tasks {
		g.tasks[t.ID] = t
		if t.ID >= g.nextID {
			g.nextID = t.ID + 1
		}
	}
	return g
}

// NextID returns the id the next created task will receive.
func (g *Graph) NextID() int { return g.nextID }

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int { return len(g.tasks) }

// Get returns a task by id.
func (g *Graph) Get(id int) (models.Task, error) {
	t, ok := g.tasks[id]
	if !ok {
		return models.Task{}, unknownTask(id)
	}
	return t, nil
}

// Tasks returns all tasks sorted by id.
func (g *Graph) Tasks() []models.Task {
	out := make([]models.Task, 0, len(g.tasks))
	for _, t := range g.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Draft carries the user-supplied fields for a new task.
type Draft struct {
	Title        string
	Description  string
	Priority     models.TaskPriority
	Complexity   models.TaskComplexity
	Tags         []string
	Dependencies []int
}

// Add creates a task from a draft, assigns the next id, and wires any
// initial dependencies. Validation failures leave the graph unchanged.
func (g *Graph) Add(d Draft) (models.Task, error) {
	id := g.nextID
	t := models.NewTask(id, d.Title)
	if d.Description != "" {
		t.Description = d.Description
	}
	if d.Priority != "" {
		t.Priority = d.Priority
	}
	if d.Complexity != "" {
		t.Complexity = d.Complexity
	}
	t.Tags = models.NormalizeTags(d.Tags)

	if err := models.ValidateStruct(t); err != nil {
		return models.Task{}, invalidTask(id, err)
	}

	// Dependency targets must exist. Cycles are impossible for a brand-new
	// node (nothing depends on it yet), so existence is the only check.
	for _, depID := range d.Dependencies {
		if depID == id {
			return models.Task{}, selfDependency(id)
		}
		if _, ok := g.tasks[depID]; !ok {
			return models.Task{}, unknownTask(depID)
		}
	}

	now := time.Now().UTC()
	for _, depID := range d.Dependencies {
		if slices.Contains(t.Dependencies, depID) {
			continue
		}
		t.Dependencies = append(t.Dependencies, depID)
		dep := g.tasks[depID]
		dep.Dependents = appendIfMissing(dep.Dependents, id)
		dep.UpdatedAt = now
		g.tasks[depID] = dep
	}
	sort.Ints(t.Dependencies)

	g.tasks[id] = t
	g.nextID = id + 1
	return t, nil
}

// AddSubtask creates a task under a parent. The child inherits the parent's
// priority and tags when the draft leaves them empty, matching manual
// subtask creation.
func (g *Graph) AddSubtask(parentID int, d Draft) (models.Task, error) {
	parent, ok := g.tasks[parentID]
	if !ok {
		return models.Task{}, unknownTask(parentID)
	}
	if d.Priority == "" {
		d.Priority = parent.Priority
	}
	if len(d.Tags) == 0 {
		d.Tags = slices.Clone(parent.Tags)
	}

	child, err := g.Add(d)
	if err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	pid := parentID
	child.ParentID = &pid
	child.UpdatedAt = now
	g.tasks[child.ID] = child

	parent = g.tasks[parentID]
	parent.SubtaskIDs = appendIfMissing(parent.SubtaskIDs, child.ID)
	parent.UpdatedAt = now
	g.tasks[parentID] = parent

	return child, nil
}

// AddSubtasks creates a batch of children under a parent, all-or-nothing.
// On any failure the graph is restored to its prior state, so a failed
// decomposition creates zero subtasks.
func (g *Graph) AddSubtasks(parentID int, drafts []Draft) ([]models.Task, error) {
	if _, ok := g.tasks[parentID]; !ok {
		return nil, unknownTask(parentID)
	}
	snapshot := g.snapshot()
	created := make([]models.Task, 0, len(drafts))
	for _, d := range drafts {
		child, err := g.AddSubtask(parentID, d)
		if err != nil {
			g.restore(snapshot)
			return nil, err
		}
		created = append(created, child)
	}
	return created, nil
}

// Patch carries optional edits for Update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
	Complexity  *models.TaskComplexity
	Tags        []string
}

// Update applies a patch to a task's own fields. Relations are edited
// through the dedicated methods, never through Update.
func (g *Graph) Update(id int, p Patch) (models.Task, error) {
	t, ok := g.tasks[id]
	if !ok {
		return models.Task{}, unknownTask(id)
	}
	orig := t

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Complexity != nil {
		t.Complexity = *p.Complexity
	}
	if p.Tags != nil {
		t.Tags = models.NormalizeTags(p.Tags)
	}
	t.UpdatedAt = time.Now().UTC()

	if err := models.ValidateStruct(t); err != nil {
		g.tasks[id] = orig
		return models.Task{}, invalidTask(id, err)
	}
	g.tasks[id] = t
	return t, nil
}

// SetStatus sets a task's explicit status. Transitioning into done stamps
// CompletedAt; leaving done clears it. With cascade, the same status is
// applied to the entire subtree.
func (g *Graph) SetStatus(id int, status models.TaskStatus, cascade bool) (int, error) {
	if _, ok := g.tasks[id]; !ok {
		return 0, unknownTask(id)
	}
	now := time.Now().UTC()
	count := 0
	var apply func(id int)
	apply = func(id int) {
		t := g.tasks[id]
		if t.Status != status {
			if status == models.StatusDone {
				t.CompletedAt = &now
			} else if t.Status == models.StatusDone {
				t.CompletedAt = nil
			}
			t.Status = status
			t.UpdatedAt = now
		}
		g.tasks[id] = t
		count++
		if cascade {
			for _, cid := range t.SubtaskIDs {
				if _, ok := g.tasks[cid]; ok {
					apply(cid)
				}
			}
		}
	}
	apply(id)
	return count, nil
}

// AddDependency records that task depends on dep (dep blocks task). The
// edge is validated for existence, self-loops, and cycles before commit.
func (g *Graph) AddDependency(taskID, depID int) error {
	if err := g.ValidateAddDependency(taskID, depID); err != nil {
		return err
	}
	now := time.Now().UTC()

	t := g.tasks[taskID]
	t.Dependencies = appendIfMissing(t.Dependencies, depID)
	sort.Ints(t.Dependencies)
	t.UpdatedAt = now
	g.tasks[taskID] = t

	dep := g.tasks[depID]
	dep.Dependents = appendIfMissing(dep.Dependents, taskID)
	sort.Ints(dep.Dependents)
	dep.UpdatedAt = now
	g.tasks[depID] = dep
	return nil
}

// RemoveDependency removes the dependency edge task -> dep. Removing an
// edge that does not exist is not an error.
func (g *Graph) RemoveDependency(taskID, depID int) error {
	t, ok := g.tasks[taskID]
	if !ok {
		return unknownTask(taskID)
	}
	dep, ok := g.tasks[depID]
	if !ok {
		return unknownTask(depID)
	}
	now := time.Now().UTC()
	t.Dependencies = removeID(t.Dependencies, depID)
	t.UpdatedAt = now
	g.tasks[taskID] = t
	dep.Dependents = removeID(dep.Dependents, taskID)
	dep.UpdatedAt = now
	g.tasks[depID] = dep
	return nil
}

// Reparent moves a task under a new parent, validating that the move keeps
// containment a forest (the new parent must not be the child or one of its
// descendants).
func (g *Graph) Reparent(childID, newParentID int) error {
	if err := g.validateReparent(childID, newParentID); err != nil {
		return err
	}
	now := time.Now().UTC()
	child := g.tasks[childID]
	if child.ParentID != nil {
		if old, ok := g.tasks[*child.ParentID]; ok {
			old.SubtaskIDs = removeID(old.SubtaskIDs, childID)
			old.UpdatedAt = now
			g.tasks[*child.ParentID] = old
		}
	}
	parent := g.tasks[newParentID]
	parent.SubtaskIDs = appendIfMissing(parent.SubtaskIDs, childID)
	parent.UpdatedAt = now
	g.tasks[newParentID] = parent
	pid := newParentID
	child.ParentID = &pid
	child.UpdatedAt = now
	g.tasks[childID] = child
	return nil
}

// RemoveSubtask detaches a child from its parent. The child becomes a root
// task; it is not deleted.
func (g *Graph) RemoveSubtask(parentID, childID int) error {
	parent, ok := g.tasks[parentID]
	if !ok {
		return unknownTask(parentID)
	}
	child, ok := g.tasks[childID]
	if !ok {
		return unknownTask(childID)
	}
	if child.ParentID == nil || *child.ParentID != parentID {
		return types.NewValidationError("not-a-subtask",
			fmt.Sprintf("task %d is not a subtask of task %d", childID, parentID), childID, parentID)
	}
	now := time.Now().UTC()
	parent.SubtaskIDs = removeID(parent.SubtaskIDs, childID)
	parent.UpdatedAt = now
	g.tasks[parentID] = parent
	child.ParentID = nil
	child.UpdatedAt = now
	g.tasks[childID] = child
	return nil
}

// Delete removes a task and detaches it from both relations. Dependents
// lose the edge (the dependency is treated as satisfied, not dangling).
// Children are promoted to the deleted task's parent, or become root tasks
// when the deleted task was a root.
func (g *Graph) Delete(id int) error {
	victim, ok := g.tasks[id]
	if !ok {
		return unknownTask(id)
	}
	now := time.Now().UTC()

	// Detach from the parent.
	if victim.ParentID != nil {
		if parent, ok := g.tasks[*victim.ParentID]; ok {
			parent.SubtaskIDs = removeID(parent.SubtaskIDs, id)
			parent.UpdatedAt = now
			g.tasks[*victim.ParentID] = parent
		}
	}

	// Promote children to the grandparent.
	for _, cid := range victim.SubtaskIDs {
		child, ok := g.tasks[cid]
		if !ok {
			continue
		}
		child.ParentID = nil
		if victim.ParentID != nil {
			if parent, ok := g.tasks[*victim.ParentID]; ok {
				gp := *victim.ParentID
				child.ParentID = &gp
				parent.SubtaskIDs = appendIfMissing(parent.SubtaskIDs, cid)
				parent.UpdatedAt = now
				g.tasks[gp] = parent
			}
		}
		child.UpdatedAt = now
		g.tasks[cid] = child
	}

	// Strip dependency edges in both directions.
	for _, depID := range victim.Dependencies {
		if dep, ok := g.tasks[depID]; ok {
			dep.Dependents = removeID(dep.Dependents, id)
			dep.UpdatedAt = now
			g.tasks[depID] = dep
		}
	}
	for _, depentID := range victim.Dependents {
		if depent, ok := g.tasks[depentID]; ok {
			depent.Dependencies = removeID(depent.Dependencies, id)
			depent.UpdatedAt = now
			g.tasks[depentID] = depent
		}
	}

	delete(g.tasks, id)
	return nil
}

// graphSnapshot is the saved state for all-or-nothing batch operations.
// nextID is carried explicitly: it cannot be recomputed from the surviving
// ids without handing deleted ids back out.
type graphSnapshot struct {
	tasks  map[int]models.Task
	nextID int
}

// snapshot deep-copies the arena and the id high-water mark.
func (g *Graph) snapshot() graphSnapshot {
	cp := make(map[int]models.Task, len(g.tasks))
	for id, t := range g.tasks {
		t.Tags = slices.Clone(t.Tags)
		t.SubtaskIDs = slices.Clone(t.SubtaskIDs)
		t.Dependencies = slices.Clone(t.Dependencies)
		t.Dependents = slices.Clone(t.Dependents)
		cp[id] = t
	}
	return graphSnapshot{tasks: cp, nextID: g.nextID}
}

func (g *Graph) restore(s graphSnapshot) {
	g.tasks = s.tasks
	g.nextID = s.nextID
}

func appendIfMissing(ids []int, id int) []int {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func unknownTask(id int) error {
	return types.NewValidationError("unknown-task", fmt.Sprintf("task %d not found", id), id)
}

func selfDependency(id int) error {
	return types.NewValidationError("self-dependency", fmt.Sprintf("task %d cannot depend on itself", id), id)
}

func invalidTask(id int, err error) error {
	return types.NewValidationError("invalid-task", fmt.Sprintf("task %d: %v", id, err), id)
}
