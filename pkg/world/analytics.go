package world

import "github.com/dshills/tdsim/pkg/contracts"

// Analytics returns the lazily-computed analytics report, recomputing it
// if the maze layout or tower set has changed since the last query.
func (w *World) Analytics() contracts.AnalyticsReport {
	if !w.analyticsDirty {
		return w.analyticsCache
	}
	return w.computeAnalytics()
}

// computeAnalytics unconditionally recomputes and caches the analytics
// report. Called eagerly whenever MazeLayoutChanged or
// RequestAnalyticsRefresh fires, so AnalyticsUpdated carries the fresh
// report in the same event batch.
func (w *World) computeAnalytics() contracts.AnalyticsReport {
	w.rebuildNavFieldIfDirty()

	report := contracts.AnalyticsReport{
		TowerCount:         len(w.towers),
		ShortestPathLength: w.shortestSpawnerDistance(),
		CoverageMean:       w.coverageMean(),
		FiringCompletePct:  w.firingReadyPct(),
		TotalDPS:           w.totalDPS(),
	}

	w.analyticsCache = report
	w.analyticsDirty = false
	return report
}

// shortestSpawnerDistance returns the minimum navigation-field distance over
// every spawner cell, or -1 if no spawner can reach the exit.
func (w *World) shortestSpawnerDistance() int {
	best := -1
	for _, cell := range w.spawners {
		d := w.navField.At(cell)
		if d == contracts.InfDistance {
			continue
		}
		if best == -1 || int(d) < best {
			best = int(d)
		}
	}
	return best
}

// coverageMean is the fraction of passable, reachable cells within range of
// at least one tower.
func (w *World) coverageMean() float64 {
	var passable, covered int
	for row := 0; row < w.geo.height; row++ {
		for col := 0; col < w.geo.width; col++ {
			cell := contracts.Cell{Col: col, Row: row}
			idx := w.geo.idx(cell)
			if w.walls[idx] {
				continue
			}
			if w.navField.At(cell) == contracts.InfDistance {
				continue
			}
			passable++
			if w.isCovered(cell) {
				covered++
			}
		}
	}
	if passable == 0 {
		return 0
	}
	return float64(covered) / float64(passable)
}

func (w *World) isCovered(cell contracts.Cell) bool {
	target := contracts.CellCenterHalf(cell)
	for _, id := range sortedTowerIDs(w.towers) {
		tower := w.towers[id]
		rangeHalf := int64(tower.Kind.RangeInCells(w.geo.cellsPerTile)) * 2
		if tower.Footprint.CenterHalf().SquaredDistance(target) <= rangeHalf*rangeHalf {
			return true
		}
	}
	return false
}

// firingReadyPct is the fraction of towers currently off cooldown.
func (w *World) firingReadyPct() float64 {
	if len(w.towers) == 0 {
		return 0
	}
	ready := 0
	for _, t := range w.towers {
		if t.CooldownRemainingMs == 0 {
			ready++
		}
	}
	return float64(ready) / float64(len(w.towers))
}

// totalDPS sums each tower's steady-state damage-per-second assuming
// continuous firing at its cooldown rate.
func (w *World) totalDPS() float64 {
	var total float64
	for _, t := range w.towers {
		cooldown := t.Kind.FireCooldownMs()
		if cooldown <= 0 {
			continue
		}
		total += float64(t.Kind.ProjectileDamage()) * 1000 / float64(cooldown)
	}
	return total
}
