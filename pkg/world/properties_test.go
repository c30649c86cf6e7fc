package world_test

import (
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/world"
)

// op is one step of a randomly generated command script: either advance
// time or attempt to spawn a bug at a random cell (most attempts land off
// the rim or on an occupied cell and are harmlessly rejected; that is part
// of what's being exercised).
type op struct {
	tick    bool
	dtMs    int64
	spawn   contracts.SpawnBug
}

func genScript(t *rapid.T, width, height int) []op {
	n := rapid.IntRange(5, 40).Draw(t, "opCount")
	ops := make([]op, n)
	for i := range ops {
		if rapid.Bool().Draw(t, fmt.Sprintf("isTick_%d", i)) {
			ops[i] = op{tick: true, dtMs: rapid.Int64Range(10, 500).Draw(t, fmt.Sprintf("dt_%d", i))}
			continue
		}
		ops[i] = op{spawn: contracts.SpawnBug{
			Species: rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("species_%d", i)),
			Health:  rapid.Int64Range(1, 20).Draw(t, fmt.Sprintf("health_%d", i)),
			StepMs:  rapid.Int64Range(50, 1000).Draw(t, fmt.Sprintf("stepMs_%d", i)),
			Cell: contracts.Cell{
				Col: rapid.IntRange(0, width-1).Draw(t, fmt.Sprintf("col_%d", i)),
				Row: rapid.IntRange(0, height-1).Draw(t, fmt.Sprintf("row_%d", i)),
			},
			Tint: rapid.Uint32().Draw(t, fmt.Sprintf("tint_%d", i)),
		}}
	}
	return ops
}

func buildAndRun(seed uint64, cols, rows, cellsPerTile int, script []op) *world.World {
	w := world.New(contracts.DefaultTuning(), seed)
	w.Apply(contracts.ConfigureTileGrid{Cols: cols, Rows: rows, CellsPerTile: cellsPerTile})
	w.Apply(contracts.SetPlayMode{Mode: contracts.Attack})
	for _, o := range script {
		if o.tick {
			w.Apply(contracts.Tick{DtMs: o.dtMs})
		} else {
			w.Apply(o.spawn)
		}
	}
	return w
}

// TestProperty_ReplayIsBitIdentical asserts that applying the same command
// sequence against the same seed twice produces identical observable state.
func TestProperty_ReplayIsBitIdentical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		cols := rapid.IntRange(1, 3).Draw(t, "cols")
		rows := rapid.IntRange(1, 3).Draw(t, "rows")
		cellsPerTile := rapid.IntRange(1, 3).Draw(t, "cellsPerTile")

		script := genScript(t, cols*cellsPerTile+2, rows*cellsPerTile+4)

		w1 := buildAndRun(seed, cols, rows, cellsPerTile, script)
		w2 := buildAndRun(seed, cols, rows, cellsPerTile, script)

		if !reflect.DeepEqual(w1.BugView(), w2.BugView()) {
			t.Fatalf("bug view diverged on replay")
		}
		if !reflect.DeepEqual(w1.ProjectileView(), w2.ProjectileView()) {
			t.Fatalf("projectile view diverged on replay")
		}
		if w1.Gold() != w2.Gold() {
			t.Fatalf("gold diverged on replay: %d vs %d", w1.Gold(), w2.Gold())
		}
	})
}

// TestProperty_NoTwoBugsShareACell asserts that no sequence of spawns and
// ticks ever leaves two live bugs occupying the same cell.
func TestProperty_NoTwoBugsShareACell(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		cols := rapid.IntRange(1, 3).Draw(t, "cols")
		rows := rapid.IntRange(1, 3).Draw(t, "rows")
		cellsPerTile := rapid.IntRange(1, 3).Draw(t, "cellsPerTile")

		script := genScript(t, cols*cellsPerTile+2, rows*cellsPerTile+4)
		w := buildAndRun(seed, cols, rows, cellsPerTile, script)

		seen := make(map[contracts.Cell]contracts.BugID)
		for _, bug := range w.BugView().Bugs {
			if other, ok := seen[bug.Cell]; ok {
				t.Fatalf("bugs %d and %d share cell %v", other, bug.ID, bug.Cell)
			}
			seen[bug.Cell] = bug.ID
		}
	})
}

// TestProperty_AccumMsStaysInBounds asserts 0 <= accum_ms <= step_ms holds
// for every live bug after every tick.
func TestProperty_AccumMsStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		cols := rapid.IntRange(1, 3).Draw(t, "cols")
		rows := rapid.IntRange(1, 3).Draw(t, "rows")
		cellsPerTile := rapid.IntRange(1, 3).Draw(t, "cellsPerTile")

		script := genScript(t, cols*cellsPerTile+2, rows*cellsPerTile+4)
		w := buildAndRun(seed, cols, rows, cellsPerTile, script)

		for _, bug := range w.BugView().Bugs {
			if bug.AccumMs < 0 || bug.AccumMs > bug.StepMs {
				t.Fatalf("bug %d has out-of-bounds accum_ms %d (step_ms %d)", bug.ID, bug.AccumMs, bug.StepMs)
			}
		}
	})
}

// TestProperty_BugIDsAreMonotonic asserts that bug ids are assigned in
// strictly increasing spawn order: an earlier-spawned bug's id is always
// smaller than a later-spawned bug's id.
func TestProperty_BugIDsAreMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := world.New(contracts.DefaultTuning(), rapid.Uint64().Draw(t, "seed"))
		w.Apply(contracts.ConfigureTileGrid{Cols: 2, Rows: 2, CellsPerTile: 2})
		w.Apply(contracts.SetPlayMode{Mode: contracts.Attack})

		n := rapid.IntRange(2, 10).Draw(t, "spawnCount")
		var lastID contracts.BugID
		for i := 0; i < n; i++ {
			col := rapid.IntRange(0, 7).Draw(t, fmt.Sprintf("col_%d", i))
			events := w.Apply(contracts.SpawnBug{Health: 1, StepMs: 100, Cell: contracts.Cell{Col: col, Row: 0}})
			for _, e := range events {
				spawned, ok := e.(contracts.BugSpawned)
				if !ok {
					continue
				}
				if spawned.Bug <= lastID {
					t.Fatalf("bug id %d did not increase past previous id %d", spawned.Bug, lastID)
				}
				lastID = spawned.Bug
			}
		}
	})
}
