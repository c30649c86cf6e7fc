package wavegen

import (
	"math"

	"github.com/dshills/tdsim/pkg/contracts"
)

// clamp restricts v to [lo, hi], mirroring the pacing curve's own clamp
// helper kept next to the curves it bounds.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// muCount is the logistic S-curve mean of the bug count latent, bounded
// between CountMin and CountCap.
func muCount(t contracts.WaveTuning, d float64) float64 {
	return t.CountMin + (t.CountCap-t.CountMin)/(1+math.Exp(-t.CountA*(d-t.CountDMid)))
}

// muHPMultiplier is the exponential-decay-to-asymptote mean of the per-bug
// HP multiplier latent, composed with a per-tier geometric growth factor
// past HPDTier.
//
// The HP multiplier is dimensionless (the curve's own H_base scale factor is
// reserved for the pressure-budget formula, where it converts a multiplier
// back into HP units); evaluating it here without that factor keeps the
// result on the scale of the [0.6, 2.2] sampling bounds the truncated normal
// uses. The curve is not clamped: it lies inside those bounds for
// difficulties from about 0.5 to about 8, and outside that range the
// truncated-normal draw lands at or near the nearer bound.
func muHPMultiplier(t contracts.WaveTuning, d float64) float64 {
	soft := 1 + t.HPSoft*(1-math.Exp(-t.HPK*(d-1)))
	growthExp := d - t.HPDTier
	if growthExp < 0 {
		growthExp = 0
	}
	return soft * math.Pow(t.HPGrowth, growthExp)
}

// muSpeedMultiplier is the analogous curve to muHPMultiplier for the speed
// latent, sharing the same exponential-decay shape but without a geometric
// growth term: speed has bounds and a midpoint/slope but no separate
// growth constant. The result is clamped to the [0.6, 1.7] sampling bounds.
func muSpeedMultiplier(t contracts.WaveTuning, d float64) float64 {
	const speedSoft = 0.3
	return clamp(1+speedSoft*(1-math.Exp(-t.SpeedK*(d-t.SpeedDMid))), 0.6, 1.7)
}

// muCadenceMs is the linear-decreasing cadence mean, clamped between 180ms
// and the base cadence.
func muCadenceMs(t contracts.WaveTuning, d float64) float64 {
	return clamp(t.CadenceBaseMs-t.CadenceSlopeMs*(d-1), 180, t.CadenceBaseMs)
}

// targetDurationMs returns the wave's target total duration for compression,
// a linear function of difficulty clamped to stay positive.
func targetDurationMs(t contracts.WaveTuning, d float64) float64 {
	v := t.TargetDurationBaseMs + t.TargetDurationSlopeMs*(d-1)
	if v < 1000 {
		v = 1000
	}
	return v
}
