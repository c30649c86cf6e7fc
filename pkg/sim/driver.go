// Package sim is the simulation driver: the one component permitted to
// depend on both the world and its sibling systems. It orders each tick's
// command/event pumping — advance time, plan movement, select targets, fire
// — and is the sole place in the kernel that accepts a context.Context,
// since it is the boundary a caller might want to cancel a long-running
// batch of ticks from.
package sim

import (
	"context"

	"github.com/dshills/tdsim/pkg/combat"
	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/crowd"
	"github.com/dshills/tdsim/pkg/targeting"
	"github.com/dshills/tdsim/pkg/world"
)

// Driver orchestrates one world across repeated ticks, holding the
// movement planner's persistent scratch state between them.
type Driver struct {
	world   *world.World
	planner *crowd.Planner
}

// New creates a driver over an existing world.
func New(w *world.World) *Driver {
	return &Driver{world: w, planner: crowd.New()}
}

// World returns the underlying world for direct queries.
func (d *Driver) World() *world.World {
	return d.world
}

// Submit applies a single command and returns its events, bypassing the
// per-tick system pipeline. Use this for builder-mode commands
// (ConfigureTileGrid, PlaceTower, SetPlayMode, ...) that fall outside the
// Attack-mode tick loop.
func (d *Driver) Submit(cmd contracts.Command) []contracts.Event {
	return d.world.Apply(cmd)
}

// Advance runs one simulated tick: it advances time, then lets the crowd
// planner, targeting system, and combat system react to the resulting
// state, submitting every command they produce back through the world. It
// returns every event emitted in the order the underlying commands were
// applied.
func (d *Driver) Advance(ctx context.Context, dtMs int64) ([]contracts.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var events []contracts.Event
	events = append(events, d.world.Apply(contracts.Tick{DtMs: dtMs})...)

	tuning := d.world.Tuning().Movement
	steps := d.planner.Plan(d.world.BugView(), d.world.OccupancyView(), d.world.NavigationField(), tuning)
	for _, step := range steps {
		events = append(events, d.world.Apply(step)...)
	}

	targets := targeting.Select(d.world.TowerView(), d.world.BugView(), d.world.CellsPerTile())
	fires := combat.PlanFire(targets, d.world.TowerCooldownView())
	for _, fire := range fires {
		events = append(events, d.world.Apply(fire)...)
	}

	return events, nil
}
