// Package rng provides deterministic random number generation for the wave
// generator and any other stage of the simulation kernel that needs
// reproducible sampling.
//
// # Overview
//
// The RNG type ensures reproducible wave generation by deriving a seed from
// a master seed and a stage name. The wave generator creates one RNG per
// wave, named after its (level id, wave index, difficulty), and consumes its
// draws in a fixed stage order (count, HP, speed, species, apportionment,
// cadence), so the wave as a whole stays fully deterministic for a given
// (game seed, level id, wave index, difficulty) tuple. Other callers, such as
// the world, draw an independent sequence from the same game seed by using a
// different stage name.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: the game seed
//   - stageName: the stage identifier; the wave generator uses
//     "wavegen:<level_id>:<wave_index>:<difficulty>", the world uses "world"
//   - configHash: hash of any additional per-stage parameters (may be empty)
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different stages get independent random sequences (isolation)
//  3. Parameter changes result in different sequences (sensitivity)
//
// # Usage
//
// Create one RNG for a wave:
//
//	stageName := fmt.Sprintf("wavegen:%s:%d:%g", levelID, waveIndex, difficulty)
//	r := rng.NewRNG(gameSeed, stageName, nil)
//
// Use it for every random decision of that wave, always in the same order:
//
//	count := r.TruncatedNormal(muCount, sdCount, 5, cap)
//	hpMul := r.TruncatedNormal(1.0, 0.05, 0.6, 2.2)
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create stage-specific RNGs before spawning goroutines and pass
// them explicitly.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation.
// Reuse RNG instances within a stage for best performance.
package rng
