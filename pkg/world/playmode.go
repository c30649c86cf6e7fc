package world

import (
	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/rng"
)

func (w *World) applySetPlayMode(c contracts.SetPlayMode) []contracts.Event {
	if c.Mode == w.playMode {
		return nil
	}

	switch c.Mode {
	case contracts.Builder:
		for i := range w.bugAt {
			w.bugAt[i] = 0
		}
		w.bugs = make(map[contracts.BugID]*contracts.Bug)
		w.projectiles = make(map[contracts.ProjectileID]*contracts.Projectile)
	case contracts.Attack:
		w.prng = rng.NewRNG(w.gameSeed, "world", nil)
	}

	w.playMode = c.Mode
	return []contracts.Event{contracts.PlayModeChanged{Mode: c.Mode}}
}

// killReward returns the gold reward for killing a bug at the current
// difficulty tier, scaled by (tier+1) and saturating.
func (w *World) killReward(baseReward uint64) uint64 {
	mult := uint64(w.difficultyTier + 1)
	reward := baseReward * mult
	if mult != 0 && reward/mult != baseReward {
		return ^uint64(0) // saturate on overflow
	}
	return reward
}

func (w *World) addGold(amount uint64) {
	sum := w.gold + amount
	if sum < w.gold {
		sum = ^uint64(0) // saturate
	}
	w.gold = sum
}

func (w *World) spendGold(amount uint64) bool {
	if w.gold < amount {
		return false
	}
	w.gold -= amount
	return true
}

// baseKillReward is the gold awarded per bug kill before tier scaling.
const baseKillReward = 5

func (w *World) applyResolveRound(c contracts.ResolveRound) []contracts.Event {
	var events []contracts.Event

	switch c.Outcome.Kind {
	case contracts.WinNormal:
		// No tier change: only Hard victories increment the tier.
	case contracts.WinHard:
		w.difficultyTier++
		events = append(events, contracts.DifficultyTierChanged{Tier: w.difficultyTier})
		events = append(events, contracts.HardWinAchieved{Tier: w.difficultyTier})
	case contracts.Loss:
		if w.difficultyTier > 0 {
			w.difficultyTier--
		}
		events = append(events, contracts.DifficultyTierChanged{Tier: w.difficultyTier})

		removed := w.removeHighestTowers(1)
		events = append(events, contracts.RoundLost{NewTier: w.difficultyTier, TowersRemoved: removed})
		if len(removed) > 0 {
			w.analyticsDirty = true
			events = append(events, contracts.MazeLayoutChanged{}, contracts.AnalyticsUpdated{Report: w.computeAnalytics()})
		}
	}

	return events
}

// removeHighestTowers removes up to n towers, highest ids first, and returns
// the ids removed in the order they were removed (descending).
func (w *World) removeHighestTowers(n int) []contracts.TowerID {
	ids := sortedTowerIDs(w.towers)
	var removed []contracts.TowerID
	for i := 0; i < n && i < len(ids); i++ {
		id := ids[len(ids)-1-i]
		w.clearTowerOccupancy(id)
		delete(w.towers, id)
		removed = append(removed, id)
	}
	if len(removed) > 0 {
		w.navFieldDirty = true
		w.rebuildNavField()
	}
	return removed
}
