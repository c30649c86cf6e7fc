package wavegen

import (
	"math"
	"sort"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/rng"
)

// speciesDraw is a single species' centre and rolled share, carried through
// the apportionment and merge stages before becoming a contracts.SpeciesStat.
type speciesDraw struct {
	index      int
	logHP      float64
	logSpeed   float64
	share      float64 // Dirichlet-drawn proportion, before Hamilton rounding
	count      int
}

// gammaSample draws from a Gamma(shape, 1) distribution via Marsaglia and
// Tsang's method, boosting sub-unit shapes by one and correcting with a
// uniform draw as their paper describes.
func gammaSample(r *rng.RNG, shape float64) float64 {
	if shape < 1 {
		u := r.Float64()
		return gammaSample(r, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// dirichlet draws a K-dimensional sample from a symmetric Dirichlet(alpha).
func dirichlet(r *rng.RNG, alpha float64, k int) []float64 {
	draws := make([]float64, k)
	total := 0.0
	for i := range draws {
		draws[i] = gammaSample(r, alpha)
		total += draws[i]
	}
	if total == 0 {
		for i := range draws {
			draws[i] = 1.0 / float64(k)
		}
		return draws
	}
	for i := range draws {
		draws[i] /= total
	}
	return draws
}

// hamiltonApportion rounds shares into integer counts summing exactly to
// total, by floor-allocating then distributing the remaining units to the
// largest fractional remainders (ties broken by lowest index).
func hamiltonApportion(shares []float64, total int) []int {
	k := len(shares)
	counts := make([]int, k)
	remainders := make([]float64, k)
	assigned := 0
	for i, s := range shares {
		exact := s * float64(total)
		counts[i] = int(math.Floor(exact))
		remainders[i] = exact - math.Floor(exact)
		assigned += counts[i]
	}
	remaining := total - assigned
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if remainders[order[a]] != remainders[order[b]] {
			return remainders[order[a]] > remainders[order[b]]
		}
		return order[a] < order[b]
	})
	for i := 0; i < remaining; i++ {
		counts[order[i%k]]++
	}
	return counts
}

// speciesCount draws K, the number of distinct species in the wave, as a
// Poisson count clamped to [1, min(SpeciesMaxK, floor(count/minShareFloor))].
func speciesCount(r *rng.RNG, t contracts.WaveTuning, d float64, count int) (k int, telemetry contracts.StageTelemetry) {
	kappa := t.SpeciesKappaBase + t.SpeciesKappaSlope*d
	if kappa < 0 {
		kappa = 0
	}
	kRaw := r.Poisson(kappa)

	minShare := int(math.Ceil(t.MinShareFrac * float64(count)))
	if minShare < 1 {
		minShare = 1
	}
	shareCap := count / minShare
	if shareCap < 1 {
		shareCap = 1
	}

	k = kRaw
	if k < 1 {
		k = 1
	}
	if k > t.SpeciesMaxK {
		k = t.SpeciesMaxK
	}
	if k > shareCap {
		k = shareCap
	}

	telemetry = contracts.StageTelemetry{
		Stage:     "species_count",
		Triggered: kRaw != k,
		Detail:    "poisson draw clamped to species bounds",
	}
	return k, telemetry
}

// speciesCentres draws each species' (log_hp, log_speed) centre from a
// bivariate normal around the population mean curves, using the RNG's
// correlated-Gaussian-pair draw scaled by the configured sigmas. The draws
// are not truncated: a centre can lie any distance from the means.
func speciesCentres(r *rng.RNG, t contracts.WaveTuning, d float64, k int) []speciesDraw {
	meanLogHP := math.Log(muHPMultiplier(t, d))
	meanLogSpeed := math.Log(muSpeedMultiplier(t, d))

	draws := make([]speciesDraw, k)
	for i := 0; i < k; i++ {
		zh, zv := r.CorrelatedGaussianPair(t.SpeciesCentreRho)
		draws[i] = speciesDraw{
			index:    i,
			logHP:    meanLogHP + zh*t.SpeciesCentreSigmaH,
			logSpeed: meanLogSpeed + zv*t.SpeciesCentreSigmaV,
		}
	}
	return draws
}

// apportion draws a Dirichlet share per species and rounds to integer counts
// summing exactly to count via Hamilton's method.
func apportion(r *rng.RNG, t contracts.WaveTuning, draws []speciesDraw, count int) {
	shares := dirichlet(r, t.DirichletAlphaMix, len(draws))
	counts := hamiltonApportion(shares, count)
	for i := range draws {
		draws[i].share = shares[i]
		draws[i].count = counts[i]
	}
}

// mergeUndersized repeatedly folds the smallest under-threshold species into
// its nearest neighbour in (log_hp, log_speed) space until every surviving
// species meets the floor or only one remains, reindexing to 0..K-1.
// Returns the surviving draws and one telemetry record per merge performed.
func mergeUndersized(draws []speciesDraw, count int) ([]speciesDraw, []contracts.StageTelemetry) {
	floor := int(math.Ceil(0.10 * float64(count)))
	var telemetry []contracts.StageTelemetry

	for len(draws) > 1 {
		smallest := -1
		for i, sp := range draws {
			if sp.count < floor {
				if smallest == -1 || sp.count < draws[smallest].count ||
					(sp.count == draws[smallest].count && sp.index < draws[smallest].index) {
					smallest = i
				}
			}
		}
		if smallest == -1 {
			break
		}

		nearest := -1
		bestDist := math.Inf(1)
		for i, sp := range draws {
			if i == smallest {
				continue
			}
			dh := draws[smallest].logHP - sp.logHP
			dv := draws[smallest].logSpeed - sp.logSpeed
			dist := dh*dh + dv*dv
			if dist < bestDist || (dist == bestDist && (nearest == -1 || sp.index < draws[nearest].index)) {
				bestDist = dist
				nearest = i
			}
		}

		draws[nearest].count += draws[smallest].count
		telemetry = append(telemetry, contracts.StageTelemetry{
			Stage:     "species_merge",
			Triggered: true,
			Detail:    "merged an under-threshold species into its nearest neighbour",
		})
		draws = append(draws[:smallest], draws[smallest+1:]...)
	}

	for i := range draws {
		draws[i].index = i
	}

	if telemetry == nil {
		telemetry = []contracts.StageTelemetry{{Stage: "species_merge", Triggered: false, Detail: "no species fell below the floor"}}
	}
	return draws, telemetry
}

// scalePressure bisects eta in [EtaMin, EtaMax] for a fixed iteration count
// so that the pressure implied by scaling every species' hp/speed by eta
// matches the wave's pressure budget as closely as a monotone bisection
// allows, and returns the accepted eta; Generate applies it to every species.
// HP is scaled by HPBase here, as it is in the budget itself.
func scalePressure(t contracts.WaveTuning, draws []speciesDraw, pressure float64) float64 {
	pressureAt := func(eta float64) float64 {
		sum := 0.0
		for _, sp := range draws {
			hp := eta * t.HPBase * math.Exp(sp.logHP)
			v := eta * math.Exp(sp.logSpeed)
			sum += float64(sp.count) * (t.PressureAlpha*hp + t.PressureBeta*math.Pow(v, t.PressureGamma))
		}
		return sum
	}

	lo, hi := t.EtaMin, t.EtaMax
	for i := 0; i < t.EtaIterations; i++ {
		mid := (lo + hi) / 2
		if pressureAt(mid) < pressure {
			lo = mid
		} else {
			hi = mid
		}
	}
	eta := clamp((lo+hi)/2, t.EtaMin, t.EtaMax)
	return eta
}
