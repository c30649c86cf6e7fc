package targeting

import (
	"testing"

	"github.com/dshills/tdsim/pkg/contracts"
)

func towerAt(id contracts.TowerID, col, row int) contracts.Tower {
	return contracts.Tower{
		ID:        id,
		Kind:      contracts.Basic,
		Footprint: contracts.CellRect{Origin: contracts.Cell{Col: col, Row: row}, Width: 2, Height: 2},
	}
}

func bugAt(id contracts.BugID, col, row int) contracts.Bug {
	return contracts.Bug{ID: id, Cell: contracts.Cell{Col: col, Row: row}, Health: 10, StepMs: 500}
}

func TestSelect_PicksNearestInRange(t *testing.T) {
	towers := contracts.TowerView{Towers: []contracts.Tower{towerAt(1, 0, 0)}}
	bugs := contracts.BugView{Bugs: []contracts.Bug{bugAt(1, 10, 10), bugAt(2, 1, 1)}}

	targets := Select(towers, bugs, 4)
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if targets[0].Bug != 2 {
		t.Fatalf("expected nearest bug 2, got %d", targets[0].Bug)
	}
}

func TestSelect_NoTargetOutOfRange(t *testing.T) {
	towers := contracts.TowerView{Towers: []contracts.Tower{towerAt(1, 0, 0)}}
	bugs := contracts.BugView{Bugs: []contracts.Bug{bugAt(1, 100, 100)}}

	targets := Select(towers, bugs, 4)
	if len(targets) != 0 {
		t.Fatalf("expected no targets, got %d", len(targets))
	}
}

func TestSelect_TieBreaksByBugID(t *testing.T) {
	towers := contracts.TowerView{Towers: []contracts.Tower{towerAt(1, 0, 0)}}
	bugs := contracts.BugView{Bugs: []contracts.Bug{bugAt(5, 2, 2), bugAt(2, 2, 2)}}

	targets := Select(towers, bugs, 4)
	if len(targets) != 1 || targets[0].Bug != 2 {
		t.Fatalf("expected lowest bug id 2 to win the tie, got %+v", targets)
	}
}
