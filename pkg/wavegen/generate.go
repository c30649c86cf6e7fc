package wavegen

import (
	"fmt"
	"math"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/rng"
)

// Generate runs the full wave generation pipeline for one wave and returns
// its deterministic attack plan. Calling Generate twice with identical
// arguments always produces a byte-identical AttackPlan.
func Generate(t contracts.WaveTuning, gameSeed uint64, levelID string, waveIndex int, waveID contracts.WaveID, difficulty float64) *contracts.AttackPlan {
	stageName := fmt.Sprintf("wavegen:%s:%d:%g", levelID, waveIndex, difficulty)
	r := rng.NewRNG(gameSeed, stageName, nil)

	var telemetry []contracts.StageTelemetry

	// Stage 1: count latent.
	mCount := muCount(t, difficulty)
	count := int(math.Round(r.TruncatedNormal(mCount, t.CountSDFrac*mCount, 5, t.CountCap)))
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "count_latent", Triggered: true, Detail: "count sampled from the logistic mean curve"})

	// Stage 2: HP latent.
	mHP := muHPMultiplier(t, difficulty)
	hpMul0 := r.TruncatedNormal(mHP, t.HPSDFrac*mHP, 0.6, 2.2)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "hp_latent", Triggered: true, Detail: "HP multiplier sampled from the exponential-decay mean curve"})

	// Stage 3: speed latent.
	mSpeed := muSpeedMultiplier(t, difficulty)
	spdMul0 := r.TruncatedNormal(mSpeed, t.SpeedSDFrac*mSpeed, 0.6, 1.7)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "speed_latent", Triggered: true, Detail: "speed multiplier sampled from the exponential-decay mean curve"})

	// Stage 4: pressure budget.
	pressure := math.Round(float64(count) * (t.PressureAlpha*t.HPBase*hpMul0 + t.PressureBeta*math.Pow(spdMul0, t.PressureGamma)))
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "pressure_budget", Triggered: true, Detail: "pressure budget rolled up from count and latent multipliers"})

	// Stage 5: species count.
	k, kTelemetry := speciesCount(r, t, difficulty, count)
	telemetry = append(telemetry, kTelemetry)

	// Stage 6: species centres.
	draws := speciesCentres(r, t, difficulty, k)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "species_centres", Triggered: true, Detail: "per-species (log_hp, log_speed) centres drawn from a correlated bivariate normal"})

	// Stage 7: apportionment.
	apportion(r, t, draws, count)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "apportionment", Triggered: true, Detail: "Dirichlet shares rounded via Hamilton's largest remainder"})

	// Stage 8: merge undersized species.
	draws, mergeTelemetry := mergeUndersized(draws, count)
	telemetry = append(telemetry, mergeTelemetry...)

	// Stage 9: global eta scaling.
	eta := scalePressure(t, draws, pressure)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "eta_scaling", Triggered: true, Detail: fmt.Sprintf("eta=%g accepted after %d bisection iterations", eta, t.EtaIterations)})

	species := make([]contracts.SpeciesStat, len(draws))
	for i, sp := range draws {
		species[i] = contracts.SpeciesStat{
			Index:           sp.index,
			HPMultiplier:    eta * math.Exp(sp.logHP),
			SpeedMultiplier: eta * math.Exp(sp.logSpeed),
			Count:           sp.count,
		}
	}

	// Stage 10: cadence/start.
	rollCadence(r, t, difficulty, species)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "cadence", Triggered: true, Detail: "per-species cadence and start offset sampled"})

	// Stage 11: schedule.
	records := buildSchedule(species)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "schedule", Triggered: true, Detail: "spawn times laid out from cadence and start offsets"})

	// Stage 12: duration compression.
	records, compressionTelemetry := compressDuration(t, difficulty, species, records)
	telemetry = append(telemetry, compressionTelemetry)

	// Stage 13: sort.
	sortSchedule(records)
	telemetry = append(telemetry, contracts.StageTelemetry{Stage: "sort", Triggered: true, Detail: "spawn records sorted lexicographically"})

	return &contracts.AttackPlan{
		WaveID:     waveID,
		Difficulty: difficulty,
		Count:      count,
		Pressure:   pressure,
		Species:    species,
		Schedule:   records,
		Telemetry:  telemetry,
	}
}
