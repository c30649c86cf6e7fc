package world

import "github.com/dshills/tdsim/pkg/contracts"

func (w *World) applySpawnBug(c contracts.SpawnBug) []contracts.Event {
	if !w.geo.inBounds(c.Cell) || !w.geo.isRimCell(c.Cell) {
		return []contracts.Event{contracts.BugStepRejected{Reason: contracts.StepOutOfBounds}}
	}
	if w.walls[w.geo.idx(c.Cell)] || w.bugAt[w.geo.idx(c.Cell)] != 0 || w.towerAt[w.geo.idx(c.Cell)] != 0 {
		return []contracts.Event{contracts.BugStepRejected{Reason: contracts.StepOccupied}}
	}
	if c.StepMs <= 0 {
		return nil
	}

	id := w.nextBugID
	w.nextBugID++

	bug := &contracts.Bug{
		ID:      id,
		Cell:    c.Cell,
		Health:  c.Health,
		StepMs:  c.StepMs,
		AccumMs: c.StepMs, // may step immediately
		Species: c.Species,
		Tint:    c.Tint,
	}
	w.bugs[id] = bug
	w.bugAt[w.geo.idx(c.Cell)] = id

	return []contracts.Event{contracts.BugSpawned{
		Bug:     id,
		Cell:    c.Cell,
		Species: c.Species,
		Health:  c.Health,
		StepMs:  c.StepMs,
		Tint:    c.Tint,
	}}
}

func (w *World) applyStepBug(c contracts.StepBug) []contracts.Event {
	bug, ok := w.bugs[c.Bug]
	if !ok {
		return []contracts.Event{contracts.BugStepRejected{Bug: c.Bug, Reason: contracts.StepMissingBug}}
	}

	from := bug.Cell
	to := from.Add(c.Direction)

	if !w.geo.inBounds(to) {
		return []contracts.Event{contracts.BugStepRejected{Bug: c.Bug, Reason: contracts.StepOutOfBounds}}
	}
	if w.walls[w.geo.idx(to)] {
		return []contracts.Event{contracts.BugStepRejected{Bug: c.Bug, Reason: contracts.StepWall}}
	}
	if to.Row == w.geo.exitRow && (to.Col < w.geo.gapColStart || to.Col > w.geo.gapColEnd) {
		return []contracts.Event{contracts.BugStepRejected{Bug: c.Bug, Reason: contracts.StepMisalignedExit}}
	}
	isExit := to.Row == w.geo.exitRow
	if !isExit {
		if w.bugAt[w.geo.idx(to)] != 0 || w.towerAt[w.geo.idx(to)] != 0 {
			return []contracts.Event{contracts.BugStepRejected{Bug: c.Bug, Reason: contracts.StepOccupied}}
		}
	}

	w.bugAt[w.geo.idx(from)] = 0
	if !isExit {
		w.bugAt[w.geo.idx(to)] = c.Bug
	}
	bug.Cell = to
	bug.AccumMs -= bug.StepMs
	if bug.AccumMs < 0 {
		bug.AccumMs = 0
	}

	events := []contracts.Event{contracts.BugAdvanced{Bug: c.Bug, From: from, To: to}}
	if isExit {
		events = append(events, contracts.BugExited{Bug: c.Bug, Cell: to})
		delete(w.bugs, c.Bug)
	}
	return events
}
