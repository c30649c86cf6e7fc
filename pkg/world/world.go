// Package world owns all authoritative simulation state. World.Apply is the
// single mutation entry point: every command crosses this boundary, and
// every mutation emits an ordered event list. No other package may mutate
// this state; systems in sibling packages receive read-only views.
//
// Commands are dispatched through a validate-then-mutate switch, and every
// entity collection is keyed by a monotonic integer id. Go map iteration
// order is intentionally randomized, so every ordered view sorts its id set
// explicitly before returning it.
package world

import (
	"sort"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/rng"
)

// World is the authoritative mutable simulation state.
type World struct {
	geo geometry

	walls   []bool
	bugAt   []contracts.BugID   // 0 means empty; valid ids start at 1
	towerAt []contracts.TowerID // 0 means empty; valid ids start at 1

	spawners []contracts.Cell

	navField      contracts.NavigationFieldView
	navFieldDirty bool

	bugs        map[contracts.BugID]*contracts.Bug
	nextBugID   contracts.BugID
	towers      map[contracts.TowerID]*contracts.Tower
	nextTowerID contracts.TowerID

	projectiles      map[contracts.ProjectileID]*contracts.Projectile
	nextProjectileID contracts.ProjectileID

	playMode              contracts.PlayMode
	gold                  uint64
	difficultyTier        int
	pendingWaveDifficulty float64

	gameSeed uint64
	prng     *rng.RNG

	attackPlans   map[contracts.WaveID]*contracts.AttackPlan
	pendingWaveID contracts.WaveID

	tuning contracts.TuningConfig

	analyticsDirty bool
	analyticsCache contracts.AnalyticsReport
}

// startingGold is the gold balance a freshly configured world begins with,
// picked so a single Basic tower (cost 50) is affordable before any kill
// reward is earned, breaking the otherwise circular "need a tower to earn
// gold to afford a tower" bootstrap.
const startingGold = 200

// New creates a world with the given tuning and deterministic seed. The
// world starts unconfigured (zero-sized grid) until ConfigureTileGrid is
// applied.
func New(tuning contracts.TuningConfig, seed uint64) *World {
	w := &World{
		bugs:             make(map[contracts.BugID]*contracts.Bug),
		towers:           make(map[contracts.TowerID]*contracts.Tower),
		projectiles:      make(map[contracts.ProjectileID]*contracts.Projectile),
		nextBugID:        1,
		nextTowerID:      1,
		nextProjectileID: 1,
		playMode:         contracts.Builder,
		gold:             startingGold,
		gameSeed:         seed,
		prng:             rng.NewRNG(seed, "world", nil),
		attackPlans:      make(map[contracts.WaveID]*contracts.AttackPlan),
		tuning:           tuning,
		analyticsDirty:   true,
	}
	return w
}

// Apply is the single mutation entry point. It never partially mutates:
// validation failures emit a rejection event and return the world
// unchanged.
func (w *World) Apply(cmd contracts.Command) []contracts.Event {
	switch c := cmd.(type) {
	case contracts.ConfigureTileGrid:
		return w.applyConfigureTileGrid(c)
	case contracts.SetPlayMode:
		return w.applySetPlayMode(c)
	case contracts.Tick:
		return w.applyTick(c)
	case contracts.SpawnBug:
		return w.applySpawnBug(c)
	case contracts.StepBug:
		return w.applyStepBug(c)
	case contracts.PlaceTower:
		return w.applyPlaceTower(c)
	case contracts.RemoveTower:
		return w.applyRemoveTower(c)
	case contracts.FireProjectile:
		return w.applyFireProjectile(c)
	case contracts.GenerateAttackPlan:
		return w.applyGenerateAttackPlan(c)
	case contracts.StartWave:
		return w.applyStartWave(c)
	case contracts.ResolveRound:
		return w.applyResolveRound(c)
	case contracts.RequestAnalyticsRefresh:
		w.analyticsDirty = true
		return []contracts.Event{contracts.AnalyticsUpdated{Report: w.computeAnalytics()}}
	default:
		return nil
	}
}

func sortedBugIDs(m map[contracts.BugID]*contracts.Bug) []contracts.BugID {
	ids := make([]contracts.BugID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedTowerIDs(m map[contracts.TowerID]*contracts.Tower) []contracts.TowerID {
	ids := make([]contracts.TowerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedProjectileIDs(m map[contracts.ProjectileID]*contracts.Projectile) []contracts.ProjectileID {
	ids := make([]contracts.ProjectileID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *World) rebuildNavFieldIfDirty() {
	if !w.navFieldDirty {
		return
	}
	w.rebuildNavField()
}
