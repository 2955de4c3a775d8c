package task

import (
	"sort"

	"github.com/trusty-cli/trusty/models"
)

// isCandidate reports whether a task could be recommended on its own
// merits: effectively pending and every direct dependency effectively done.
// Whether it is leaf work is resolved separately by resolveLeaf.
func (g *Graph) isCandidate(t models.Task) bool {
	if g.effectiveStatus(t.ID, make(map[int]bool)) != models.StatusPending {
		return false
	}
	for _, depID := range t.Dependencies {
		if _, ok := g.tasks[depID]; !ok {
			continue // deleted dependency counts as satisfied
		}
		if g.effectiveStatus(depID, make(map[int]bool)) != models.StatusDone {
			return false
		}
	}
	return true
}

// byRecommendation orders candidates: higher priority first, then earlier
// creation (FIFO fairness), then lower id as a deterministic final tiebreak.
func byRecommendation(tasks []models.Task) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
}

// RecommendNext selects the single best actionable leaf task. It returns
// (0, false) when no candidate exists, which is a normal terminal outcome:
// all work is blocked, deferred, in flight, or complete.
//
// Candidates are pending tasks whose direct dependencies are all done.
// A candidate with children is never returned itself; the recommendation
// recurses into its best actionable descendant. A parent with no actionable
// descendant is skipped in favor of the next candidate.
func (g *Graph) RecommendNext() (int, bool) {
	// Every candidate enters the pool, subtasks included: a pending child
	// under an in-progress parent is still actionable work. Candidate
	// parents are resolved to a leaf descendant, never returned directly.
	candidates := make([]models.Task, 0)
	for _, t := range g.tasks {
		if g.isCandidate(t) {
			candidates = append(candidates, t)
		}
	}
	sort.SliceStable(candidates, byRecommendation(candidates))

	for _, c := range candidates {
		if id, ok := g.resolveLeaf(c); ok {
			return id, true
		}
	}
	return 0, false
}

// resolveLeaf descends from a candidate to the best candidate leaf beneath
// it. A childless candidate resolves to itself.
func (g *Graph) resolveLeaf(t models.Task) (int, bool) {
	if len(t.SubtaskIDs) == 0 {
		return t.ID, true
	}
	children := make([]models.Task, 0, len(t.SubtaskIDs))
	for _, cid := range t.SubtaskIDs {
		child, ok := g.tasks[cid]
		if !ok {
			continue
		}
		if g.isCandidate(child) {
			children = append(children, child)
		}
	}
	sort.SliceStable(children, byRecommendation(children))
	for _, child := range children {
		if id, ok := g.resolveLeaf(child); ok {
			return id, true
		}
	}
	return 0, false
}
