package contracts

// SpeciesStat describes one species' rolled statistics within a wave.
type SpeciesStat struct {
	Index       int
	HPMultiplier    float64
	SpeedMultiplier float64
	CadenceMs       float64
	StartMs         float64
	Count           int
}

// SpawnRecord is one scheduled bug spawn within an AttackPlan.
type SpawnRecord struct {
	TimeMs           float64
	SpeciesID        int
	IndexWithinSpecies int
}

// StageTelemetry records a single wave-generation stage's outcome, emitted
// even when the stage's triggering condition did not fire.
type StageTelemetry struct {
	Stage     string
	Triggered bool
	Detail    string
}

// AttackPlan is the deterministic spawn schedule produced by the wave
// generator for one wave.
type AttackPlan struct {
	WaveID     WaveID
	Difficulty float64
	Count      int
	Pressure   float64
	Species    []SpeciesStat
	Schedule   []SpawnRecord
	Telemetry  []StageTelemetry
}
