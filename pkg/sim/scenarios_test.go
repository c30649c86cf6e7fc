package sim_test

import (
	"context"
	"testing"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/sim"
	"github.com/dshills/tdsim/pkg/world"
)

// newAttackWorld configures a small grid and returns the driver wrapping it.
// The world is left in Builder mode so callers can place towers before they
// switch it to Attack.
func newAttackWorld(t *testing.T, tileCols, tileRows, cellsPerTile int) *sim.Driver {
	t.Helper()
	w := world.New(contracts.DefaultTuning(), 1)
	d := sim.New(w)
	d.Submit(contracts.ConfigureTileGrid{Cols: tileCols, Rows: tileRows, CellsPerTile: cellsPerTile})
	return d
}

func countEvents[T contracts.Event](events []contracts.Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func assertNoStepRejections(t *testing.T, events []contracts.Event) {
	t.Helper()
	for _, e := range events {
		if r, ok := e.(contracts.BugStepRejected); ok {
			t.Fatalf("unexpected BugStepRejected: %+v", r)
		}
	}
}

// TestScenario_BaselineCorridorWalk spawns a single bug directly above the
// exit gap on an obstruction-free grid and ticks it one cell per step until
// it exits, asserting every tick advances the bug south with no rejections.
func TestScenario_BaselineCorridorWalk(t *testing.T) {
	d := newAttackWorld(t, 1, 1, 2)
	d.Submit(contracts.SetPlayMode{Mode: contracts.Attack})

	gapStart, _ := d.World().ExitGapColumns()
	spawnCell := contracts.Cell{Col: gapStart, Row: 0}
	spawnEvents := d.Submit(contracts.SpawnBug{Health: 1, StepMs: 250, Cell: spawnCell})
	if countEvents[contracts.BugSpawned](spawnEvents) != 1 {
		t.Fatalf("expected bug to spawn, got %+v", spawnEvents)
	}

	exitRow := d.World().ExitRow()
	wantSteps := exitRow // rows 0..exitRow-1 each need exactly one southward step

	exited := false
	advances := 0
	for i := 0; i < wantSteps+2 && !exited; i++ {
		events, err := d.Advance(context.Background(), 250)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		assertNoStepRejections(t, events)
		for _, e := range events {
			switch ev := e.(type) {
			case contracts.BugAdvanced:
				if ev.To.Col != ev.From.Col || ev.To.Row != ev.From.Row+1 {
					t.Fatalf("expected southward step, got %+v", ev)
				}
				advances++
			case contracts.BugExited:
				exited = true
			}
		}
	}

	if !exited {
		t.Fatalf("bug never exited after %d ticks", wantSteps+2)
	}
	if advances != wantSteps {
		t.Fatalf("expected %d BugAdvanced events, got %d", wantSteps, advances)
	}
}

// TestScenario_DenseCorridorQueue feeds six bugs into a single-cell-wide
// corridor, one per tick whenever the spawn cell is clear, and asserts every
// one eventually reaches the exit without the world ever double-occupying a
// cell.
func TestScenario_DenseCorridorQueue(t *testing.T) {
	d := newAttackWorld(t, 1, 3, 1)
	d.Submit(contracts.SetPlayMode{Mode: contracts.Attack})

	gapStart, _ := d.World().ExitGapColumns()
	spawnCell := contracts.Cell{Col: gapStart, Row: 0}

	const total = 6
	spawned, exited := 0, 0

	const maxTicks = 60
	for i := 0; i < maxTicks && exited < total; i++ {
		if spawned < total {
			occ := d.World().OccupancyView()
			if _, occupied := occ.BugAt[spawnCell]; !occupied {
				events := d.Submit(contracts.SpawnBug{Health: 1, StepMs: 250, Cell: spawnCell})
				if countEvents[contracts.BugSpawned](events) == 1 {
					spawned++
				}
			}
		}

		events, err := d.Advance(context.Background(), 250)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		exited += countEvents[contracts.BugExited](events)

		seen := make(map[contracts.Cell]bool)
		for _, bug := range d.World().BugView().Bugs {
			if seen[bug.Cell] {
				t.Fatalf("cell %v double-occupied", bug.Cell)
			}
			seen[bug.Cell] = true
		}
	}

	if spawned != total {
		t.Fatalf("expected all %d bugs to spawn, got %d", total, spawned)
	}
	if exited != total {
		t.Fatalf("expected all %d bugs to exit within %d ticks, got %d", total, maxTicks, exited)
	}
}

// TestScenario_TargetingTieBreak places two bugs at mirrored cells equally
// distant from a single tower and asserts the tower always fires on the
// lower bug id, per the canonical tie-break order.
func TestScenario_TargetingTieBreak(t *testing.T) {
	d := newAttackWorld(t, 3, 1, 2)

	placeEvents := d.Submit(contracts.PlaceTower{Kind: contracts.Basic, Origin: contracts.Cell{Col: 3, Row: 1}})
	if countEvents[contracts.TowerPlaced](placeEvents) != 1 {
		t.Fatalf("expected tower to place, got %+v", placeEvents)
	}

	d.Submit(contracts.SetPlayMode{Mode: contracts.Attack})

	leftEvents := d.Submit(contracts.SpawnBug{Health: 10, StepMs: 100000, Cell: contracts.Cell{Col: 2, Row: 0}})
	rightEvents := d.Submit(contracts.SpawnBug{Health: 10, StepMs: 100000, Cell: contracts.Cell{Col: 5, Row: 0}})
	if countEvents[contracts.BugSpawned](leftEvents) != 1 || countEvents[contracts.BugSpawned](rightEvents) != 1 {
		t.Fatalf("expected both mirrored bugs to spawn")
	}

	bugs := d.World().BugView().Bugs
	if len(bugs) != 2 {
		t.Fatalf("expected 2 live bugs, got %d", len(bugs))
	}
	lowerID := bugs[0].ID
	if bugs[1].ID < lowerID {
		lowerID = bugs[1].ID
	}

	events, err := d.Advance(context.Background(), 10)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	var fired int
	var target contracts.BugID
	for _, e := range events {
		if f, ok := e.(contracts.ProjectileFired); ok {
			fired++
			target = f.Target
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly one ProjectileFired, got %d", fired)
	}
	if target != lowerID {
		t.Fatalf("expected tower to target lower bug id %d, got %d", lowerID, target)
	}
}

// TestScenario_CooldownGating places a single tower and bug in range, then
// checks that the cooldown gates firing to every other advance at the
// tower's 1000ms cooldown against a 500ms tick.
func TestScenario_CooldownGating(t *testing.T) {
	d := newAttackWorld(t, 3, 1, 2)

	placeEvents := d.Submit(contracts.PlaceTower{Kind: contracts.Basic, Origin: contracts.Cell{Col: 3, Row: 1}})
	if countEvents[contracts.TowerPlaced](placeEvents) != 1 {
		t.Fatalf("expected tower to place, got %+v", placeEvents)
	}

	d.Submit(contracts.SetPlayMode{Mode: contracts.Attack})
	spawnEvents := d.Submit(contracts.SpawnBug{Health: 100, StepMs: 100000, Cell: contracts.Cell{Col: 3, Row: 0}})
	if countEvents[contracts.BugSpawned](spawnEvents) != 1 {
		t.Fatalf("expected bug to spawn, got %+v", spawnEvents)
	}

	var fireCounts []int
	for i := 0; i < 3; i++ {
		events, err := d.Advance(context.Background(), 500)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		fireCounts = append(fireCounts, countEvents[contracts.ProjectileFired](events))
	}

	if fireCounts[0]+fireCounts[1] != 1 {
		t.Fatalf("expected exactly one ProjectileFired across first two ticks, got %v", fireCounts[:2])
	}
	if fireCounts[2] != 1 {
		t.Fatalf("expected exactly one ProjectileFired on the third tick, got %d", fireCounts[2])
	}
}

// TestScenario_SideHallwayDiversion blocks the straight path above the exit
// gap with a tower and asserts the bug still reaches the exit by routing
// around it through a side hallway, guided by the navigation field's
// detour-aware distances.
func TestScenario_SideHallwayDiversion(t *testing.T) {
	d := newAttackWorld(t, 3, 2, 2)

	placeEvents := d.Submit(contracts.PlaceTower{Kind: contracts.Basic, Origin: contracts.Cell{Col: 3, Row: 2}})
	if countEvents[contracts.TowerPlaced](placeEvents) != 1 {
		t.Fatalf("expected blocking tower to place, got %+v", placeEvents)
	}

	d.Submit(contracts.SetPlayMode{Mode: contracts.Attack})

	gapStart, _ := d.World().ExitGapColumns()
	spawnEvents := d.Submit(contracts.SpawnBug{Health: 1, StepMs: 250, Cell: contracts.Cell{Col: gapStart, Row: 0}})
	if countEvents[contracts.BugSpawned](spawnEvents) != 1 {
		t.Fatalf("expected bug to spawn, got %+v", spawnEvents)
	}

	exited := false
	for i := 0; i < 40 && !exited; i++ {
		events, err := d.Advance(context.Background(), 250)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		for _, e := range events {
			if r, ok := e.(contracts.BugStepRejected); ok && r.Reason != contracts.StepOccupied {
				t.Fatalf("unexpected rejection detouring around the blockage: %+v", r)
			}
			if _, ok := e.(contracts.BugExited); ok {
				exited = true
			}
		}
	}

	if !exited {
		t.Fatalf("bug never routed around the blockage to exit")
	}
}
