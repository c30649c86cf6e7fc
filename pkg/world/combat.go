package world

import "github.com/dshills/tdsim/pkg/contracts"

func (w *World) applyFireProjectile(c contracts.FireProjectile) []contracts.Event {
	if w.playMode != contracts.Attack {
		return []contracts.Event{contracts.ProjectileRejected{Reason: contracts.FireInvalidMode}}
	}
	tower, ok := w.towers[c.Tower]
	if !ok {
		return []contracts.Event{contracts.ProjectileRejected{Reason: contracts.FireMissingTower}}
	}
	if tower.CooldownRemainingMs > 0 {
		return []contracts.Event{contracts.ProjectileRejected{Reason: contracts.FireCooldownActive}}
	}
	bug, ok := w.bugs[c.Target]
	if !ok || bug.Health <= 0 {
		return []contracts.Event{contracts.ProjectileRejected{Reason: contracts.FireMissingTarget}}
	}

	start := tower.Footprint.CenterHalf()
	end := contracts.CellCenterHalf(bug.Cell)
	distHalf := isqrt(start.SquaredDistance(end))

	id := w.nextProjectileID
	w.nextProjectileID++

	travel := tower.Kind.ProjectileTravelTimeMs()
	if travel <= 0 {
		travel = 1
	}

	w.projectiles[id] = &contracts.Projectile{
		ID:           id,
		Tower:        c.Tower,
		Target:       c.Target,
		Start:        start,
		End:          end,
		DistanceHalf: distHalf,
		ElapsedMs:    0,
		TravelTimeMs: travel,
		Damage:       tower.Kind.ProjectileDamage(),
	}
	tower.CooldownRemainingMs = tower.Kind.FireCooldownMs()

	return []contracts.Event{contracts.ProjectileFired{Projectile: id, Tower: c.Tower, Target: c.Target}}
}

// isqrt returns the integer square root of a non-negative int64, used to
// cache a projectile's travel distance in half-cell units without ever
// touching floating point in a decision path.
func isqrt(v int64) int64 {
	if v <= 0 {
		return 0
	}
	x := v
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + v/x) / 2
	}
	return x
}

func (w *World) advanceProjectiles(dtMs int64) []contracts.Event {
	var events []contracts.Event

	for _, id := range sortedProjectileIDs(w.projectiles) {
		p := w.projectiles[id]

		p.ElapsedMs += dtMs
		if p.ElapsedMs > p.TravelTimeMs {
			p.ElapsedMs = p.TravelTimeMs
		}

		var travelledHalf int64
		if p.TravelTimeMs > 0 {
			travelledHalf = p.DistanceHalf * p.ElapsedMs / p.TravelTimeMs
		} else {
			travelledHalf = p.DistanceHalf
		}
		if travelledHalf > p.DistanceHalf {
			travelledHalf = p.DistanceHalf
		}

		if travelledHalf < p.DistanceHalf {
			continue
		}

		bug, alive := w.bugs[p.Target]
		if alive && bug.Health > 0 {
			bug.Health -= p.Damage
			if bug.Health < 0 {
				bug.Health = 0
			}
			events = append(events, contracts.BugDamaged{Bug: p.Target, Remaining: bug.Health})
			if bug.Health == 0 {
				w.killBug(p.Target)
				events = append(events, contracts.BugDied{Bug: p.Target})
				w.addGold(w.killReward(baseKillReward))
			}
			events = append(events, contracts.ProjectileHit{Projectile: id, Target: p.Target, Damage: p.Damage})
		} else {
			events = append(events, contracts.ProjectileExpired{Projectile: id})
		}

		delete(w.projectiles, id)
	}

	return events
}

func (w *World) killBug(id contracts.BugID) {
	bug, ok := w.bugs[id]
	if !ok {
		return
	}
	if w.geo.inBounds(bug.Cell) {
		w.bugAt[w.geo.idx(bug.Cell)] = 0
	}
	delete(w.bugs, id)
}
