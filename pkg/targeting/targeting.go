// Package targeting selects, for each tower, the bug it would fire at this
// tick. Selection is a pure function of the read-only tower and bug views:
// it never mutates the world and never depends on iteration order, since
// every candidate comparison is total (distance, then id, then column, then
// row).
//
// Selection is a small pure function walking two ordered collections,
// evaluating a squared-distance range test for each candidate pair.
package targeting

import (
	"sort"

	"github.com/dshills/tdsim/pkg/contracts"
)

// Select returns one TowerTarget per tower that has at least one bug within
// range, using squared half-cell distance and breaking ties on
// (squared_distance, bug_id, column, row) in that order.
func Select(towers contracts.TowerView, bugs contracts.BugView, cellsPerTile int) []contracts.TowerTarget {
	var targets []contracts.TowerTarget

	for _, tower := range towers.Towers {
		rangeHalf := int64(tower.Kind.RangeInCells(cellsPerTile)) * 2
		rangeHalfSq := rangeHalf * rangeHalf
		center := tower.Footprint.CenterHalf()

		bestIdx := -1
		var bestDist int64

		for i, bug := range bugs.Bugs {
			bugCenter := contracts.CellCenterHalf(bug.Cell)
			dist := center.SquaredDistance(bugCenter)
			if dist > rangeHalfSq {
				continue
			}
			if bestIdx == -1 || lessCandidate(dist, bug, bugs.Bugs[bestIdx], bestDist) {
				bestIdx = i
				bestDist = dist
			}
		}

		if bestIdx == -1 {
			continue
		}
		bug := bugs.Bugs[bestIdx]
		targets = append(targets, contracts.TowerTarget{
			Tower:       tower.ID,
			Bug:         bug.ID,
			TowerCenter: center,
			BugCenter:   contracts.CellCenterHalf(bug.Cell),
		})
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Tower < targets[j].Tower })
	return targets
}

// lessCandidate reports whether (dist, bug) sorts before (bestDist, best)
// under the canonical (squared_distance, bug_id, column, row) tie-break.
func lessCandidate(dist int64, bug contracts.Bug, best contracts.Bug, bestDist int64) bool {
	if dist != bestDist {
		return dist < bestDist
	}
	if bug.ID != best.ID {
		return bug.ID < best.ID
	}
	if bug.Cell.Col != best.Cell.Col {
		return bug.Cell.Col < best.Cell.Col
	}
	return bug.Cell.Row < best.Cell.Row
}
