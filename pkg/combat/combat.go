// Package combat turns the targeting system's per-tick tower targets into
// FireProjectile commands, gated on each tower's cooldown. It holds no
// state of its own: both inputs are read-only snapshots taken from the
// world, and its output is a command list for the driver to submit back
// through World.Apply.
package combat

import "github.com/dshills/tdsim/pkg/contracts"

// PlanFire returns one FireProjectile command per target whose tower has no
// cooldown remaining, in tower-id order.
func PlanFire(targets []contracts.TowerTarget, cooldowns contracts.TowerCooldownView) []contracts.FireProjectile {
	var commands []contracts.FireProjectile
	for _, target := range targets {
		remaining, ok := cooldowns.Lookup(target.Tower)
		if !ok || remaining > 0 {
			continue
		}
		commands = append(commands, contracts.FireProjectile{Tower: target.Tower, Target: target.Bug})
	}
	return commands
}
