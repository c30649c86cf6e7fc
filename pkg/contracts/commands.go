package contracts

// Command is the sealed set of mutations a driver may submit to the world.
// Every command is processed by World.Apply to completion: apply never
// partially mutates and never fails at the call site (rejections are
// observable events, not errors).
type Command interface {
	isCommand()
}

// ConfigureTileGrid rebuilds the world's geometry. Zero dimensions are
// rejected.
type ConfigureTileGrid struct {
	Cols         int
	Rows         int
	CellsPerTile int
}

func (ConfigureTileGrid) isCommand() {}

// SetPlayMode transitions between Builder and Attack. Idempotent: no event
// is emitted if the mode is unchanged.
type SetPlayMode struct {
	Mode PlayMode
}

func (SetPlayMode) isCommand() {}

// Tick advances simulated time by dt_ms milliseconds. No-op in Builder mode.
type Tick struct {
	DtMs int64
}

func (Tick) isCommand() {}

// SpawnBug creates a new bug at a free rim cell.
type SpawnBug struct {
	Species int
	Health  int64
	StepMs  int64
	Cell    Cell
	Tint    uint32
}

func (SpawnBug) isCommand() {}

// StepBug moves a bug one cell in the given direction.
type StepBug struct {
	Bug       BugID
	Direction Direction
}

func (StepBug) isCommand() {}

// PlaceTower places a tower footprint. Rejected outside Builder mode.
type PlaceTower struct {
	Kind   TowerKind
	Origin Cell
}

func (PlaceTower) isCommand() {}

// RemoveTower removes a tower. Only valid in Builder mode.
type RemoveTower struct {
	Tower TowerID
}

func (RemoveTower) isCommand() {}

// FireProjectile launches a projectile from a ready tower at a target bug.
type FireProjectile struct {
	Tower  TowerID
	Target BugID
}

func (FireProjectile) isCommand() {}

// GenerateAttackPlan runs the wave generator and stores the resulting plan
// under the given wave id.
type GenerateAttackPlan struct {
	WaveID     WaveID
	Difficulty float64
}

func (GenerateAttackPlan) isCommand() {}

// StartWave records the effective difficulty tier for a wave.
type StartWave struct {
	Difficulty float64
}

func (StartWave) isCommand() {}

// ResolveRound applies the consequence of a round's outcome.
type ResolveRound struct {
	Outcome RoundOutcome
}

func (ResolveRound) isCommand() {}

// RequestAnalyticsRefresh recomputes the analytics report at once and
// publishes it as an AnalyticsUpdated event.
type RequestAnalyticsRefresh struct{}

func (RequestAnalyticsRefresh) isCommand() {}
