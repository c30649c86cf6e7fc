package world

import (
	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/navfield"
)

func (w *World) applyConfigureTileGrid(c contracts.ConfigureTileGrid) []contracts.Event {
	if c.Cols <= 0 {
		return []contracts.Event{contracts.TileGridRejected{Reason: contracts.GridZeroCols}}
	}
	if c.Rows <= 0 {
		return []contracts.Event{contracts.TileGridRejected{Reason: contracts.GridZeroRows}}
	}
	if c.CellsPerTile <= 0 {
		return []contracts.Event{contracts.TileGridRejected{Reason: contracts.GridZeroCellsPerTile}}
	}

	w.geo = computeGeometry(c.Cols, c.Rows, c.CellsPerTile, c.CellsPerTile)
	w.walls = w.geo.buildWalls()
	w.bugAt = make([]contracts.BugID, w.geo.width*w.geo.height)
	w.towerAt = make([]contracts.TowerID, w.geo.width*w.geo.height)
	w.spawners = w.geo.spawnerCells()

	w.bugs = make(map[contracts.BugID]*contracts.Bug)
	w.towers = make(map[contracts.TowerID]*contracts.Tower)
	w.projectiles = make(map[contracts.ProjectileID]*contracts.Projectile)
	w.nextBugID = 1
	w.nextTowerID = 1
	w.nextProjectileID = 1
	w.playMode = contracts.Builder

	w.rebuildNavField()
	w.analyticsDirty = true

	return []contracts.Event{contracts.MazeLayoutChanged{}, contracts.AnalyticsUpdated{Report: w.computeAnalytics()}}
}

// impassableMask returns a fresh row-major mask combining walls and current
// tower footprints, suitable for navfield.Build.
func (w *World) impassableMask() []bool {
	mask := make([]bool, len(w.walls))
	copy(mask, w.walls)
	for i, id := range w.towerAt {
		if id != 0 {
			mask[i] = true
		}
	}
	return mask
}

func (w *World) rebuildNavField() {
	mask := w.impassableMask()
	w.navField = navfield.Build(w.geo.width, w.geo.height, mask, w.geo.exitRow)
	w.navFieldDirty = false
}

func (w *World) markStructuralChange() []contracts.Event {
	w.rebuildNavField()
	w.analyticsDirty = true
	return []contracts.Event{contracts.MazeLayoutChanged{}, contracts.AnalyticsUpdated{Report: w.computeAnalytics()}}
}
