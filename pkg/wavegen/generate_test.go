package wavegen

import (
	"math"
	"testing"

	"github.com/dshills/tdsim/pkg/contracts"
)

func TestGenerate_Deterministic(t *testing.T) {
	tuning := contracts.DefaultTuning().Wave
	a := Generate(tuning, 42, "level-1", 3, contracts.WaveID(3), 5.0)
	b := Generate(tuning, 42, "level-1", 3, contracts.WaveID(3), 5.0)

	if a.Count != b.Count || a.Pressure != b.Pressure {
		t.Fatalf("expected identical count/pressure, got %+v vs %+v", a, b)
	}
	if len(a.Schedule) != len(b.Schedule) {
		t.Fatalf("expected identical schedule length, got %d vs %d", len(a.Schedule), len(b.Schedule))
	}
	for i := range a.Schedule {
		if a.Schedule[i] != b.Schedule[i] {
			t.Fatalf("schedule record %d diverged: %+v vs %+v", i, a.Schedule[i], b.Schedule[i])
		}
	}
}

func TestGenerate_DifferentWaveIndexDiverges(t *testing.T) {
	tuning := contracts.DefaultTuning().Wave
	a := Generate(tuning, 42, "level-1", 1, contracts.WaveID(1), 5.0)
	b := Generate(tuning, 42, "level-1", 2, contracts.WaveID(2), 5.0)

	if a.Count == b.Count && a.Pressure == b.Pressure {
		t.Fatalf("expected distinct wave indices to diverge, got identical count/pressure %v", a.Count)
	}
}

func TestGenerate_CountPreservedAcrossSpecies(t *testing.T) {
	tuning := contracts.DefaultTuning().Wave
	for seed := uint64(1); seed <= 20; seed++ {
		plan := Generate(tuning, seed, "level-1", 1, contracts.WaveID(1), 6.0)

		sum := 0
		for _, sp := range plan.Species {
			sum += sp.Count
		}
		if sum != plan.Count {
			t.Fatalf("seed %d: species counts summed to %d, want %d", seed, sum, plan.Count)
		}
		if len(plan.Schedule) != plan.Count {
			t.Fatalf("seed %d: schedule has %d records, want %d", seed, len(plan.Schedule), plan.Count)
		}
	}
}

func TestGenerate_SpeciesShareAboveFloor(t *testing.T) {
	tuning := contracts.DefaultTuning().Wave
	for seed := uint64(1); seed <= 20; seed++ {
		plan := Generate(tuning, seed, "level-1", 1, contracts.WaveID(1), 6.0)
		if plan.Count == 0 {
			continue
		}
		floor := int(math.Ceil(0.10 * float64(plan.Count)))
		for _, sp := range plan.Species {
			if len(plan.Species) > 1 && sp.Count < floor {
				t.Fatalf("seed %d: species %d has count %d below floor %d", seed, sp.Index, sp.Count, floor)
			}
		}
	}
}

func TestGenerate_ScheduleIsSortedLexicographically(t *testing.T) {
	tuning := contracts.DefaultTuning().Wave
	plan := Generate(tuning, 7, "level-1", 1, contracts.WaveID(1), 4.0)

	for i := 1; i < len(plan.Schedule); i++ {
		prev, cur := plan.Schedule[i-1], plan.Schedule[i]
		if cur.TimeMs < prev.TimeMs {
			t.Fatalf("record %d out of order: %+v before %+v", i, prev, cur)
		}
		if cur.TimeMs == prev.TimeMs && cur.SpeciesID < prev.SpeciesID {
			t.Fatalf("record %d species out of order at equal time: %+v before %+v", i, prev, cur)
		}
	}
}

func TestGenerate_SpeciesIndicesAreReindexed(t *testing.T) {
	tuning := contracts.DefaultTuning().Wave
	plan := Generate(tuning, 99, "level-1", 1, contracts.WaveID(1), 7.0)

	for i, sp := range plan.Species {
		if sp.Index != i {
			t.Fatalf("species at position %d has index %d, want %d", i, sp.Index, i)
		}
	}
}
