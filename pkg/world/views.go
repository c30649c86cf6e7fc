package world

import "github.com/dshills/tdsim/pkg/contracts"

// BugView returns an ascending-by-id snapshot of all live bugs.
func (w *World) BugView() contracts.BugView {
	ids := sortedBugIDs(w.bugs)
	bugs := make([]contracts.Bug, len(ids))
	for i, id := range ids {
		bugs[i] = *w.bugs[id]
	}
	return contracts.BugView{Bugs: bugs}
}

// TowerView returns an ascending-by-id snapshot of all towers.
func (w *World) TowerView() contracts.TowerView {
	ids := sortedTowerIDs(w.towers)
	towers := make([]contracts.Tower, len(ids))
	for i, id := range ids {
		towers[i] = *w.towers[id]
	}
	return contracts.TowerView{Towers: towers}
}

// TowerCooldownView returns an ascending-by-tower-id cooldown list, suitable
// for binary search by tower id.
func (w *World) TowerCooldownView() contracts.TowerCooldownView {
	ids := sortedTowerIDs(w.towers)
	cooldowns := make([]int64, len(ids))
	for i, id := range ids {
		cooldowns[i] = w.towers[id].CooldownRemainingMs
	}
	return contracts.TowerCooldownView{TowerIDs: ids, Cooldowns: cooldowns}
}

// ProjectileView returns an ascending-by-id snapshot of all in-flight
// projectiles.
func (w *World) ProjectileView() contracts.ProjectileView {
	ids := sortedProjectileIDs(w.projectiles)
	projectiles := make([]contracts.Projectile, len(ids))
	for i, id := range ids {
		projectiles[i] = *w.projectiles[id]
	}
	return contracts.ProjectileView{Projectiles: projectiles}
}

// OccupancyView returns a read-only projection of the dense occupancy grid.
func (w *World) OccupancyView() contracts.OccupancyView {
	bugAt := make(map[contracts.Cell]contracts.BugID, len(w.bugs))
	for id, bug := range w.bugs {
		bugAt[bug.Cell] = id
	}
	towerAt := make(map[contracts.Cell]contracts.TowerID)
	for row := 0; row < w.geo.height; row++ {
		for col := 0; col < w.geo.width; col++ {
			c := contracts.Cell{Col: col, Row: row}
			if id := w.towerAt[w.geo.idx(c)]; id != 0 {
				towerAt[c] = id
			}
		}
	}
	walls := make(map[contracts.Cell]bool)
	for row := 0; row < w.geo.height; row++ {
		for col := 0; col < w.geo.width; col++ {
			c := contracts.Cell{Col: col, Row: row}
			if w.walls[w.geo.idx(c)] {
				walls[c] = true
			}
		}
	}
	return contracts.OccupancyView{
		Width: w.geo.width, Height: w.geo.height,
		BugAt: bugAt, TowerAt: towerAt, Walls: walls,
	}
}

// NavigationField returns the current static navigation field.
func (w *World) NavigationField() contracts.NavigationFieldView {
	w.rebuildNavFieldIfDirty()
	return w.navField
}

// PlayMode returns the current play mode.
func (w *World) PlayMode() contracts.PlayMode { return w.playMode }

// CellsPerTile returns the grid's cells-per-tile.
func (w *World) CellsPerTile() int { return w.geo.cellsPerTile }

// Gold returns the current gold balance.
func (w *World) Gold() uint64 { return w.gold }

// DifficultyTier returns the current difficulty tier.
func (w *World) DifficultyTier() int { return w.difficultyTier }

// PendingWaveDifficulty returns the pending wave's difficulty scalar.
func (w *World) PendingWaveDifficulty() float64 { return w.pendingWaveDifficulty }

// AttackPlan returns the stored attack plan for a wave id, if present.
func (w *World) AttackPlan(id contracts.WaveID) (*contracts.AttackPlan, bool) {
	plan, ok := w.attackPlans[id]
	return plan, ok
}

// Spawners returns the rim cells eligible to spawn bugs.
func (w *World) Spawners() []contracts.Cell {
	out := make([]contracts.Cell, len(w.spawners))
	copy(out, w.spawners)
	return out
}

// ExitGapColumns returns the inclusive [start, end] column range of the
// exit gap, for drivers that need to pick an aligned spawn lane.
func (w *World) ExitGapColumns() (int, int) {
	return w.geo.gapColStart, w.geo.gapColEnd
}

// ExitRow returns the row index of the exit.
func (w *World) ExitRow() int {
	return w.geo.exitRow
}

// Tuning returns the world's tuning configuration.
func (w *World) Tuning() contracts.TuningConfig { return w.tuning }
