package world

import "github.com/dshills/tdsim/pkg/contracts"

func (w *World) applyPlaceTower(c contracts.PlaceTower) []contracts.Event {
	if w.playMode != contracts.Builder {
		return []contracts.Event{contracts.TowerPlacementRejected{Reason: contracts.PlaceInvalidMode}}
	}

	half := w.geo.cellsPerTile / 2
	if half < 1 {
		half = 1
	}
	if c.Origin.Col%half != 0 || c.Origin.Row%half != 0 {
		return []contracts.Event{contracts.TowerPlacementRejected{Reason: contracts.PlaceMisaligned}}
	}

	width, height := c.Kind.FootprintFor(w.geo.cellsPerTile)
	region := contracts.CellRect{Origin: c.Origin, Width: width, Height: height}

	for row := region.Origin.Row; row < region.Origin.Row+region.Height; row++ {
		for col := region.Origin.Col; col < region.Origin.Col+region.Width; col++ {
			cell := contracts.Cell{Col: col, Row: row}
			if !w.geo.inBounds(cell) {
				return []contracts.Event{contracts.TowerPlacementRejected{Reason: contracts.PlaceOutOfBounds}}
			}
			if w.walls[w.geo.idx(cell)] {
				return []contracts.Event{contracts.TowerPlacementRejected{Reason: contracts.PlaceOccupied}}
			}
			if w.towerAt[w.geo.idx(cell)] != 0 {
				return []contracts.Event{contracts.TowerPlacementRejected{Reason: contracts.PlaceOccupied}}
			}
		}
	}

	cost := c.Kind.PlacementCost()
	if w.gold < cost {
		return []contracts.Event{contracts.TowerPlacementRejected{Reason: contracts.PlaceInsufficientFunds}}
	}

	id := w.nextTowerID
	w.nextTowerID++
	w.towers[id] = &contracts.Tower{ID: id, Kind: c.Kind, Footprint: region}
	w.markTowerOccupancy(id, region)
	w.gold -= cost

	events := []contracts.Event{contracts.TowerPlaced{Tower: id, Kind: c.Kind, Region: region}}
	events = append(events, w.markStructuralChange()...)
	return events
}

func (w *World) applyRemoveTower(c contracts.RemoveTower) []contracts.Event {
	if w.playMode != contracts.Builder {
		return []contracts.Event{contracts.TowerRemovalRejected{Reason: contracts.RemoveInvalidMode}}
	}
	if _, ok := w.towers[c.Tower]; !ok {
		return []contracts.Event{contracts.TowerRemovalRejected{Reason: contracts.RemoveMissingTower}}
	}

	w.clearTowerOccupancy(c.Tower)
	delete(w.towers, c.Tower)

	events := []contracts.Event{contracts.TowerRemoved{Tower: c.Tower}}
	events = append(events, w.markStructuralChange()...)
	return events
}

func (w *World) markTowerOccupancy(id contracts.TowerID, region contracts.CellRect) {
	for row := region.Origin.Row; row < region.Origin.Row+region.Height; row++ {
		for col := region.Origin.Col; col < region.Origin.Col+region.Width; col++ {
			w.towerAt[w.geo.idx(contracts.Cell{Col: col, Row: row})] = id
		}
	}
}

func (w *World) clearTowerOccupancy(id contracts.TowerID) {
	t, ok := w.towers[id]
	if !ok {
		return
	}
	region := t.Footprint
	for row := region.Origin.Row; row < region.Origin.Row+region.Height; row++ {
		for col := region.Origin.Col; col < region.Origin.Col+region.Width; col++ {
			w.towerAt[w.geo.idx(contracts.Cell{Col: col, Row: row})] = 0
		}
	}
}
