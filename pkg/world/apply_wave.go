package world

import (
	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/wavegen"
)

// waveLevelID is the stable label mixed into the wave generator's seed
// derivation. A World instance plays exactly one level, so this is a
// constant rather than a configured field.
const waveLevelID = "default"

func (w *World) applyGenerateAttackPlan(c contracts.GenerateAttackPlan) []contracts.Event {
	plan := wavegen.Generate(w.tuning.Wave, w.gameSeed, waveLevelID, int(c.WaveID), c.WaveID, c.Difficulty)
	w.attackPlans[c.WaveID] = plan
	w.pendingWaveID = c.WaveID
	w.pendingWaveDifficulty = c.Difficulty

	return []contracts.Event{
		contracts.PendingWaveDifficultyChanged{Difficulty: c.Difficulty},
		contracts.AttackPlanReady{WaveID: c.WaveID, Plan: plan},
	}
}

func (w *World) applyStartWave(c contracts.StartWave) []contracts.Event {
	reward := uint64(1 + w.difficultyTier)
	return []contracts.Event{contracts.WaveStarted{
		WaveID:           w.pendingWaveID,
		TierEffective:    w.difficultyTier,
		RewardMultiplier: reward,
	}}
}
