// Package wavegen produces deterministic wave attack plans from a seed,
// level id, wave index, and difficulty scalar, built on pkg/rng's
// stable-seed derivation and on the S-curve/exponential-curve mean curves
// in curves.go.
//
// Generate runs thirteen fixed stages in order, consuming the stage RNG's
// draws in the exact sequence documented on each stage function, so that two
// calls with identical inputs produce byte-identical AttackPlans. Stage
// outcomes — including stages whose triggering condition did not fire — are
// recorded as StageTelemetry so a driver can audit exactly what a given seed
// produced.
package wavegen
