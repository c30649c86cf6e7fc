package combat

import (
	"testing"

	"github.com/dshills/tdsim/pkg/contracts"
)

func TestPlanFire_SkipsCooldownGated(t *testing.T) {
	targets := []contracts.TowerTarget{{Tower: 1, Bug: 10}, {Tower: 2, Bug: 11}}
	cooldowns := contracts.TowerCooldownView{TowerIDs: []contracts.TowerID{1, 2}, Cooldowns: []int64{0, 400}}

	commands := PlanFire(targets, cooldowns)
	if len(commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(commands))
	}
	if commands[0].Tower != 1 || commands[0].Target != 10 {
		t.Fatalf("unexpected command: %+v", commands[0])
	}
}

func TestPlanFire_SkipsUnknownTower(t *testing.T) {
	targets := []contracts.TowerTarget{{Tower: 99, Bug: 1}}
	cooldowns := contracts.TowerCooldownView{}

	if commands := PlanFire(targets, cooldowns); len(commands) != 0 {
		t.Fatalf("expected no commands for unknown tower, got %d", len(commands))
	}
}
