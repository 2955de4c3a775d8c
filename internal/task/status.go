package task

import "github.com/trusty-cli/trusty/models"

// EffectiveStatus derives a task's status from its explicit status and its
// children's effective statuses. It is recomputed on every read; nothing is
// cached, so staleness is impossible by construction.
//
// Rules: an explicit cancelled always wins. A leaf reports its explicit
// status. Otherwise: all children effectively done -> done; any child
// in-progress -> in-progress; any child blocked (and none in-progress) ->
// blocked; else pending.
//
// Dependencies never influence effective status. A task waiting on an unmet
// dependency still reports its honest status; dependency-blocking only
// affects recommendation candidacy.
func (g *Graph) EffectiveStatus(id int) (models.TaskStatus, error) {
	if _, ok := g.tasks[id]; !ok {
		return "", unknownTask(id)
	}
	return g.effectiveStatus(id, make(map[int]bool)), nil
}

func (g *Graph) effectiveStatus(id int, walking map[int]bool) models.TaskStatus {
	t := g.tasks[id]
	if t.Status == models.StatusCancelled {
		return models.StatusCancelled
	}
	if len(t.SubtaskIDs) == 0 {
		return t.Status
	}
	// walking guards against containment cycles in corrupt graphs so a read
	// never recurses forever; Check rejects such graphs at load time.
	if walking[id] {
		return t.Status
	}
	walking[id] = true
	defer delete(walking, id)

	allDone := true
	anyInProgress := false
	anyBlocked := false
	for _, cid := range t.SubtaskIDs {
		if _, ok := g.tasks[cid]; !ok {
			continue
		}
		switch g.effectiveStatus(cid, walking) {
		case models.StatusDone:
		case models.StatusInProgress:
			allDone = false
			anyInProgress = true
		case models.StatusBlocked:
			allDone = false
			anyBlocked = true
		default:
			allDone = false
		}
	}

	switch {
	case allDone:
		return models.StatusDone
	case anyInProgress:
		return models.StatusInProgress
	case anyBlocked:
		return models.StatusBlocked
	default:
		return models.StatusPending
	}
}

// SubtaskProgress returns how many of a task's direct subtasks are
// effectively done, and the total count.
func (g *Graph) SubtaskProgress(id int) (done, total int, err error) {
	t, ok := g.tasks[id]
	if !ok {
		return 0, 0, unknownTask(id)
	}
	for _, cid := range t.SubtaskIDs {
		if _, ok := g.tasks[cid]; !ok {
			continue
		}
		total++
		if g.effectiveStatus(cid, make(map[int]bool)) == models.StatusDone {
			done++
		}
	}
	return done, total, nil
}
