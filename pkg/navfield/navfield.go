// Package navfield computes the static, reverse-BFS Manhattan-distance grid
// used by the crowd planner as its movement gradient. The field never
// depends on dynamic bug occupancy — only walls, tower footprints, and grid
// geometry — and is rebuilt exactly once per structural mutation.
package navfield

import "github.com/dshills/tdsim/pkg/contracts"

// Inf marks an impassable cell or one with no path to any exit.
const Inf = contracts.InfDistance

// Build runs a multi-source BFS seeded from every cell in exitRow, treating
// any cell for which impassable reports true as a wall. width and height
// describe the grid shape; impassable is indexed row-major.
func Build(width, height int, impassable []bool, exitRow int) contracts.NavigationFieldView {
	dist := make([]uint16, width*height)
	for i := range dist {
		dist[i] = Inf
	}

	type queueItem struct{ col, row int }
	queue := make([]queueItem, 0, width)

	idx := func(col, row int) int { return row*width + col }

	if exitRow >= 0 && exitRow < height {
		for col := 0; col < width; col++ {
			i := idx(col, exitRow)
			if impassable[i] {
				continue
			}
			dist[i] = 0
			queue = append(queue, queueItem{col, exitRow})
		}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		curIdx := idx(cur.col, cur.row)
		curDist := dist[curIdx]

		for _, d := range contracts.Directions {
			dc, dr := d.Delta()
			nc, nr := cur.col+dc, cur.row+dr
			if nc < 0 || nc >= width || nr < 0 || nr >= height {
				continue
			}
			ni := idx(nc, nr)
			if impassable[ni] {
				continue
			}
			if dist[ni] != Inf {
				continue
			}
			dist[ni] = curDist + 1
			queue = append(queue, queueItem{nc, nr})
		}
	}

	return contracts.NavigationFieldView{Width: width, Height: height, Distance: dist}
}
