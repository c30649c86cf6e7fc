package world

import "github.com/dshills/tdsim/pkg/contracts"

func (w *World) applyTick(c contracts.Tick) []contracts.Event {
	if w.playMode != contracts.Attack {
		return nil
	}

	for _, id := range sortedBugIDs(w.bugs) {
		bug := w.bugs[id]
		bug.AccumMs += c.DtMs
		if bug.AccumMs > bug.StepMs {
			bug.AccumMs = bug.StepMs
		}
	}

	events := []contracts.Event{contracts.TimeAdvanced{DtMs: c.DtMs}}
	events = append(events, w.advanceProjectiles(c.DtMs)...)
	w.decrementCooldowns(c.DtMs)
	return events
}

func (w *World) decrementCooldowns(dtMs int64) {
	for _, id := range sortedTowerIDs(w.towers) {
		t := w.towers[id]
		t.CooldownRemainingMs -= dtMs
		if t.CooldownRemainingMs < 0 {
			t.CooldownRemainingMs = 0
		}
	}
}
