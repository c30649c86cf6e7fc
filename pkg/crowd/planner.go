// Package crowd implements the per-tick movement planner: it turns a bug
// view, occupancy snapshot, and navigation field into a list of StepBug
// commands, resolving congestion and collisions without ever touching the
// world directly.
//
// The planner owns persistent scratch state across ticks — a reusable
// congestion buffer, each bug's stall counter, and its two-tick last-cell
// ring — none of which are part of the world's authoritative Bug entity. It
// holds reusable buffers across calls, fed read-only snapshots each time,
// and produces a decision list rather than mutating shared state directly.
package crowd

import "github.com/dshills/tdsim/pkg/contracts"

// Planner holds the movement system's persistent scratch state.
type Planner struct {
	width, height int
	congestion    []int

	stallCount map[contracts.BugID]int
	lastCells  map[contracts.BugID][2]contracts.Cell
}

// New creates an empty planner.
func New() *Planner {
	return &Planner{
		stallCount: make(map[contracts.BugID]int),
		lastCells:  make(map[contracts.BugID][2]contracts.Cell),
	}
}

// StallCount returns how many consecutive ticks the bug has failed to find
// a legal step, for diagnostics.
func (p *Planner) StallCount(id contracts.BugID) int {
	return p.stallCount[id]
}

func (p *Planner) ensureCongestion(width, height int) {
	if p.width == width && p.height == height && len(p.congestion) == width*height {
		for i := range p.congestion {
			p.congestion[i] = 0
		}
		return
	}
	p.width, p.height = width, height
	p.congestion = make([]int, width*height)
}

func (p *Planner) idx(c contracts.Cell) int { return c.Row*p.width + c.Col }

// Plan runs one tick of the movement system and returns the StepBug
// commands to submit, in the ascending bug-id order they were decided.
func (p *Planner) Plan(bugs contracts.BugView, occ contracts.OccupancyView, nav contracts.NavigationFieldView, tuning contracts.MovementTuning) []contracts.StepBug {
	p.ensureCongestion(occ.Width, occ.Height)

	for _, bug := range bugs.Bugs {
		p.accumulateCongestion(bug.Cell, nav, tuning.CongestionLookahead)
	}

	reservations := make(map[contracts.Cell]contracts.BugID)
	reverseRes := make(map[contracts.BugID]contracts.Cell)

	var steps []contracts.StepBug
	for _, bug := range bugs.Bugs {
		if !bug.ReadyForStep() {
			continue
		}

		dir, dest, ok := p.selectStep(bug, occ, nav, reservations, reverseRes, tuning)
		if !ok {
			p.stallCount[bug.ID]++
			continue
		}

		steps = append(steps, contracts.StepBug{Bug: bug.ID, Direction: dir})
		reservations[dest] = bug.ID
		reverseRes[bug.ID] = dest
		p.stallCount[bug.ID] = 0
		p.pushLastCell(bug.ID, bug.Cell)
	}

	return steps
}

func (p *Planner) pushLastCell(id contracts.BugID, cell contracts.Cell) {
	ring := p.lastCells[id]
	ring[0] = ring[1]
	ring[1] = cell
	p.lastCells[id] = ring
}

func (p *Planner) inLastCells(id contracts.BugID, cell contracts.Cell) bool {
	ring := p.lastCells[id]
	return ring[0] == cell || ring[1] == cell
}

// accumulateCongestion greedily follows the navigation gradient from cell
// for up to lookahead steps, incrementing the congestion counter on every
// cell visited except the start.
func (p *Planner) accumulateCongestion(cell contracts.Cell, nav contracts.NavigationFieldView, lookahead int) {
	cur := cell
	for i := 0; i < lookahead; i++ {
		curDist := nav.At(cur)
		next, ok := cur, false
		for _, d := range contracts.Directions {
			cand := cur.Add(d)
			if cand.Col < 0 || cand.Col >= nav.Width || cand.Row < 0 || cand.Row >= nav.Height {
				continue
			}
			if nav.At(cand) < curDist {
				next, ok = cand, true
				break
			}
		}
		if !ok {
			break
		}
		cur = next
		if p.idx(cur) >= 0 && p.idx(cur) < len(p.congestion) {
			p.congestion[p.idx(cur)]++
		}
	}
}

type candidate struct {
	dir       contracts.Direction
	cell      contracts.Cell
	distance  uint16
	congested int
}

func lexLess(a, b candidate) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.congested != b.congested {
		return a.congested < b.congested
	}
	if a.cell.Col != b.cell.Col {
		return a.cell.Col < b.cell.Col
	}
	return a.cell.Row < b.cell.Row
}

func (p *Planner) isLegal(to contracts.Cell, occ contracts.OccupancyView, reservations map[contracts.Cell]contracts.BugID, reverseRes map[contracts.BugID]contracts.Cell) bool {
	if !occ.InBounds(to) || occ.IsWall(to) {
		return false
	}
	if _, reserved := reservations[to]; reserved {
		return false
	}
	if _, towered := occ.TowerAt[to]; towered {
		return false
	}
	if occupant, occupied := occ.BugAt[to]; occupied {
		dest, vacating := reverseRes[occupant]
		if !vacating || dest == to {
			return false
		}
	}
	return true
}

func (p *Planner) legalCandidates(from contracts.Cell, occ contracts.OccupancyView, nav contracts.NavigationFieldView, reservations map[contracts.Cell]contracts.BugID, reverseRes map[contracts.BugID]contracts.Cell) []candidate {
	var out []candidate
	for _, d := range contracts.Directions {
		to := from.Add(d)
		if !p.isLegal(to, occ, reservations, reverseRes) {
			continue
		}
		out = append(out, candidate{
			dir:       d,
			cell:      to,
			distance:  nav.At(to),
			congested: p.congestionAt(to),
		})
	}
	return out
}

func (p *Planner) congestionAt(c contracts.Cell) int {
	i := p.idx(c)
	if i < 0 || i >= len(p.congestion) {
		return 0
	}
	return p.congestion[i]
}

// selectStep implements the four-tier decision: progress step, flat
// side-step, detour BFS, stall.
func (p *Planner) selectStep(bug contracts.Bug, occ contracts.OccupancyView, nav contracts.NavigationFieldView, reservations map[contracts.Cell]contracts.BugID, reverseRes map[contracts.BugID]contracts.Cell, tuning contracts.MovementTuning) (contracts.Direction, contracts.Cell, bool) {
	from := bug.Cell
	curDist := nav.At(from)
	curCongestion := p.congestionAt(from)

	candidates := p.legalCandidates(from, occ, nav, reservations, reverseRes)

	var progress []candidate
	for _, c := range candidates {
		if c.distance < curDist {
			progress = append(progress, c)
		}
	}
	if len(progress) > 0 {
		best := bestOf(progress)
		return best.dir, best.cell, true
	}

	var sideStep []candidate
	for _, c := range candidates {
		if c.distance == curDist && c.congested < curCongestion && !p.inLastCells(bug.ID, c.cell) {
			sideStep = append(sideStep, c)
		}
	}
	if len(sideStep) > 0 {
		best := bestOf(sideStep)
		return best.dir, best.cell, true
	}

	return p.detourBFS(bug, from, curDist, occ, nav, reservations, reverseRes, tuning.DetourRadius)
}

func bestOf(candidates []candidate) candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if lexLess(c, best) {
			best = c
		}
	}
	return best
}

// detourBFS explores outward from the bug's current cell up to radius
// cells, using the same legality rules as direct neighbour selection.
// It accepts the first node strictly closer to the exit than the start; if
// none exists within the radius, it falls back to the globally best
// (distance, congestion, position) node visited. The first hop along the
// shortest path to that node is returned as the step.
func (p *Planner) detourBFS(bug contracts.Bug, start contracts.Cell, startDist uint16, occ contracts.OccupancyView, nav contracts.NavigationFieldView, reservations map[contracts.Cell]contracts.BugID, reverseRes map[contracts.BugID]contracts.Cell, radius int) (contracts.Direction, contracts.Cell, bool) {
	type node struct {
		cell      contracts.Cell
		depth     int
		firstHop  contracts.Direction
		firstCell contracts.Cell
	}

	visited := map[contracts.Cell]bool{start: true}
	queue := []node{{cell: start, depth: 0}}

	var bestNode node
	haveBest := false

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur.depth >= radius {
			continue
		}
		for _, d := range contracts.Directions {
			to := cur.cell.Add(d)
			if visited[to] {
				continue
			}
			if !p.isLegal(to, occ, reservations, reverseRes) {
				continue
			}
			visited[to] = true

			hop, hopCell := d, to
			if cur.depth > 0 {
				hop, hopCell = cur.firstHop, cur.firstCell
			}
			next := node{cell: to, depth: cur.depth + 1, firstHop: hop, firstCell: hopCell}
			queue = append(queue, next)

			dist := nav.At(to)
			if dist < startDist {
				return hop, hopCell, true
			}

			if !haveBest {
				bestNode, haveBest = next, true
			} else {
				cand := candidate{dir: hop, cell: to, distance: dist, congested: p.congestionAt(to)}
				bestCand := candidate{dir: bestNode.firstHop, cell: bestNode.cell, distance: nav.At(bestNode.cell), congested: p.congestionAt(bestNode.cell)}
				if lexLess(cand, bestCand) {
					bestNode = next
				}
			}
		}
	}

	if !haveBest {
		return 0, contracts.Cell{}, false
	}
	return bestNode.firstHop, bestNode.firstCell, true
}
