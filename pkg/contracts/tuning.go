package contracts

// TuningConfig is the single configuration struct exposing every tunable
// constant the kernel uses. It has no persisted file format of its own: the
// simulation kernel is a library, not a configured service. Driver code
// that does need to persist tuning overlays (e.g. named species
// archetypes) does so in pkg/wavegen, which owns that YAML surface.
type TuningConfig struct {
	Movement MovementTuning
	Combat   CombatTuning
	Wave     WaveTuning
}

// MovementTuning holds the crowd planner's bounded-search parameters.
type MovementTuning struct {
	CongestionLookahead int
	DetourRadius        int
}

// CombatTuning holds per-kind combat constants. Indexed by TowerKind; kept
// as a struct rather than a map since the kind set is closed today.
type CombatTuning struct {
	BasicFireCooldownMs        int64
	BasicProjectileTravelMs    int64
	BasicDamage                int64
	BasicRangeInTiles          int
}

// WaveTuning holds the wave generator's default curve parameters: count
// bounds, HP and speed growth shape, and spawn-pacing targets.
type WaveTuning struct {
	CountMin          float64
	CountCap          float64
	CountDMid         float64
	CountA            float64
	CountSDFrac       float64

	HPBase    float64
	HPSoft    float64
	HPK       float64
	HPGrowth  float64
	HPDTier   float64
	HPSDFrac  float64

	SpeedDMid   float64
	SpeedK      float64
	SpeedSDFrac float64

	PressureAlpha float64
	PressureBeta  float64
	PressureGamma float64

	SpeciesKappaBase  float64
	SpeciesKappaSlope float64
	SpeciesMaxK       int
	DirichletAlphaMix float64
	MinShareFrac      float64

	SpeciesCentreSigmaH float64
	SpeciesCentreSigmaV float64
	SpeciesCentreRho    float64

	EtaMin        float64
	EtaMax        float64
	EtaIterations int

	CadenceBaseMs   float64
	CadenceSlopeMs  float64
	CadenceMinMs    float64
	CadenceMaxMs    float64
	CadenceSDFrac   float64
	StartMeanMs     float64
	StartSDFrac     float64
	StartMinMs      float64
	StartMaxMs      float64

	TargetDurationBaseMs  float64
	TargetDurationSlopeMs float64
}

// DefaultTuning returns the kernel's default tuning configuration.
func DefaultTuning() TuningConfig {
	return TuningConfig{
		Movement: MovementTuning{
			CongestionLookahead: 5,
			DetourRadius:        6,
		},
		Combat: CombatTuning{
			BasicFireCooldownMs:     1000,
			BasicProjectileTravelMs: 1000,
			BasicDamage:             1,
			BasicRangeInTiles:       4,
		},
		Wave: WaveTuning{
			CountMin:    20,
			CountCap:    1000,
			CountDMid:   3,
			CountA:      1.2,
			CountSDFrac: 0.08,

			HPBase:   10,
			HPSoft:   0.6,
			HPK:      1.0,
			HPGrowth: 1.08,
			HPDTier:  4,
			HPSDFrac: 0.05,

			SpeedDMid:   3,
			SpeedK:      1.0,
			SpeedSDFrac: 0.05,

			PressureAlpha: 1,
			PressureBeta:  0.6,
			PressureGamma: 1,

			SpeciesKappaBase:  1,
			SpeciesKappaSlope: 0.5,
			SpeciesMaxK:       6,
			DirichletAlphaMix: 1.5,
			MinShareFrac:      0.10,

			SpeciesCentreSigmaH: 0.10,
			SpeciesCentreSigmaV: 0.10,
			SpeciesCentreRho:    -0.5,

			EtaMin:        0.75,
			EtaMax:        1.5,
			EtaIterations: 24,

			CadenceBaseMs:  600,
			CadenceSlopeMs: 40,
			CadenceMinMs:   120,
			CadenceMaxMs:   2000,
			CadenceSDFrac:  0.08,
			StartMeanMs:    1000,
			StartSDFrac:    0.15,
			StartMinMs:     0,
			StartMaxMs:     10000,

			TargetDurationBaseMs:  20000,
			TargetDurationSlopeMs: -1500,
		},
	}
}
