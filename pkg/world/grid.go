package world

import "github.com/dshills/tdsim/pkg/contracts"

// geometry holds the derived layout of the bordered rectangle for a given
// tile grid configuration: a passable one-cell rim on the left, right and
// top (spawners sit on it) around the interior, one walkway row below the
// interior, a wall row with a cellsPerTile-wide gap under the middle tile,
// and a hidden exit row just past it.
type geometry struct {
	tileCols, tileRows, cellsPerTile, tileEdgeLength int

	width, height int

	interiorRowStart, interiorRowEnd int // inclusive
	walkwayRow, wallRow, exitRow     int

	gapColStart, gapColEnd int // inclusive
}

func computeGeometry(tileCols, tileRows, cellsPerTile, tileEdgeLength int) geometry {
	g := geometry{
		tileCols:       tileCols,
		tileRows:       tileRows,
		cellsPerTile:   cellsPerTile,
		tileEdgeLength: tileEdgeLength,
	}

	interiorW := tileCols * cellsPerTile
	interiorH := tileRows * cellsPerTile

	g.width = interiorW + 2 // left + right rim columns
	g.interiorRowStart = 1
	g.interiorRowEnd = interiorH // rows 1..interiorH inclusive
	g.walkwayRow = interiorH + 1
	g.wallRow = interiorH + 2
	g.exitRow = interiorH + 3
	g.height = interiorH + 4

	middleTile := tileCols / 2
	gapStart := 1 + middleTile*cellsPerTile
	g.gapColStart = gapStart
	g.gapColEnd = gapStart + cellsPerTile - 1

	return g
}

func (g geometry) idx(c contracts.Cell) int {
	return c.Row*g.width + c.Col
}

func (g geometry) inBounds(c contracts.Cell) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

func (g geometry) isWallCell(c contracts.Cell) bool {
	if c.Row != g.wallRow {
		return false
	}
	return c.Col < g.gapColStart || c.Col > g.gapColEnd
}

func (g geometry) isExitCell(c contracts.Cell) bool {
	return c.Row == g.exitRow
}

func (g geometry) isRimCell(c contracts.Cell) bool {
	if c.Row == 0 {
		return true
	}
	if c.Row >= g.interiorRowStart && c.Row <= g.interiorRowEnd {
		return c.Col == 0 || c.Col == g.width-1
	}
	return false
}

// spawnerCells returns every rim cell eligible to spawn a bug, excluding the
// wall and exit rows (which by construction are never rim cells anyway).
func (g geometry) spawnerCells() []contracts.Cell {
	var cells []contracts.Cell
	for col := 0; col < g.width; col++ {
		cells = append(cells, contracts.Cell{Col: col, Row: 0})
	}
	for row := g.interiorRowStart; row <= g.interiorRowEnd; row++ {
		cells = append(cells, contracts.Cell{Col: 0, Row: row})
		cells = append(cells, contracts.Cell{Col: g.width - 1, Row: row})
	}
	return cells
}

// buildWalls returns a dense, row-major wall mask for the geometry.
func (g geometry) buildWalls() []bool {
	walls := make([]bool, g.width*g.height)
	for col := 0; col < g.width; col++ {
		c := contracts.Cell{Col: col, Row: g.wallRow}
		if g.isWallCell(c) {
			walls[g.idx(c)] = true
		}
	}
	return walls
}
