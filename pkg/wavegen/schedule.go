package wavegen

import (
	"math"
	"sort"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/rng"
)

// rollCadence draws each species' cadence and start offset, in the fixed
// order the generator requires: every species' Cad_s is drawn before any
// Start_s.
func rollCadence(r *rng.RNG, t contracts.WaveTuning, d float64, species []contracts.SpeciesStat) {
	means := make([]float64, len(species))
	for i := range species {
		means[i] = muCadenceMs(t, d)
		species[i].CadenceMs = r.TruncatedNormal(means[i], t.CadenceSDFrac*means[i], 120, 2000)
	}
	for i := range species {
		species[i].StartMs = r.TruncatedNormal(t.StartMeanMs, t.StartSDFrac*t.StartMeanMs, t.StartMinMs, t.StartMaxMs)
	}
}

// buildSchedule lays out spawn times for every species: bug i of species s
// spawns at Start_s + i*Cad_s.
func buildSchedule(species []contracts.SpeciesStat) []contracts.SpawnRecord {
	var records []contracts.SpawnRecord
	for _, sp := range species {
		for i := 0; i < sp.Count; i++ {
			records = append(records, contracts.SpawnRecord{
				TimeMs:             sp.StartMs + float64(i)*sp.CadenceMs,
				SpeciesID:          sp.Index,
				IndexWithinSpecies: i,
			})
		}
	}
	return records
}

// compressDuration scales every species' cadence down if the wave's total
// duration exceeds the difficulty's target, and rebuilds the schedule from
// the compressed cadences. Accepted even when the 120ms cadence floor
// prevents reaching the target exactly.
func compressDuration(t contracts.WaveTuning, d float64, species []contracts.SpeciesStat, records []contracts.SpawnRecord) ([]contracts.SpawnRecord, contracts.StageTelemetry) {
	maxTime := 0.0
	for _, rec := range records {
		if rec.TimeMs > maxTime {
			maxTime = rec.TimeMs
		}
	}

	target := targetDurationMs(t, d)
	if maxTime <= target {
		return records, contracts.StageTelemetry{Stage: "duration_compression", Triggered: false, Detail: "schedule already within target duration"}
	}

	c := maxTime / target
	for i := range species {
		compressed := math.Floor(species[i].CadenceMs / c)
		if compressed < 120 {
			compressed = 120
		}
		species[i].CadenceMs = compressed
	}

	return buildSchedule(species), contracts.StageTelemetry{Stage: "duration_compression", Triggered: true, Detail: "cadences compressed toward the difficulty's target duration"}
}

// sortSchedule orders spawn records lexicographically by (time_ms,
// species_id, index_within_species).
func sortSchedule(records []contracts.SpawnRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.TimeMs != b.TimeMs {
			return a.TimeMs < b.TimeMs
		}
		if a.SpeciesID != b.SpeciesID {
			return a.SpeciesID < b.SpeciesID
		}
		return a.IndexWithinSpecies < b.IndexWithinSpecies
	})
}
