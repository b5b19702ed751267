// Package planner produces the adaptively spaced survey line plan. Lines run
// north-south; their east-west spacing locally matches the sonar swath width
// implied by the depth at the start of each line, so shallow regions get
// denser lines and deep regions sparser ones.
package planner

import (
	"fmt"
	"math"

	"github.com/seabed-data/surveyfig/internal/units"
)

// boundaryToleranceNM keeps a line from being dropped when floating-point
// rounding leaves the cursor marginally past the right edge.
const boundaryToleranceNM = 1e-6

// maxLines caps the spacing loop. A plan anywhere near this size means the
// cursor is effectively not advancing, which is a configuration error.
const maxLines = 1 << 20

// DepthProfile reports depth in meters at an east-west position in nautical
// miles. The spacer samples it along the region's northern edge (y=0).
type DepthProfile func(xNM float64) float64

// Params configures the spacing loop.
type Params struct {
	HalfBeamAngleDeg float64 // sonar half beam angle; 30 means a 60 degree full beam
	SpacingFactor    float64 // slightly above 1.0 leaves a small deliberate gap
}

// DefaultParams returns the published spacing parameters.
func DefaultParams() Params {
	return Params{
		HalfBeamAngleDeg: 30,
		SpacingFactor:    1.02,
	}
}

// SwathWidthM returns the across-track seafloor width covered by a single
// sonar pass at the given depth: 2 * depth * tan(half beam angle).
func SwathWidthM(depthM, halfBeamAngleDeg float64) float64 {
	return 2 * depthM * math.Tan(units.DegreesToRadians(halfBeamAngleDeg))
}

// PlanLines walks a cursor from the left edge to the right edge of the
// region, emitting one line position per step. The first line sits at half
// the swath width implied by the depth at the northwest corner, centering the
// first swath on the left boundary. Each step advances by the local swath
// width times the spacing factor.
//
// The returned positions are strictly increasing, start above zero, and the
// sequence length is determined by the depth profile.
//
// Spacing is computed only from depth at y=0, not from the full terrain under
// each line; coverage along a line only holds if depth varies slowly on the
// north-south axis.
func PlanLines(profile DepthProfile, widthNM float64, p Params) ([]float64, error) {
	if profile == nil {
		return nil, fmt.Errorf("plan lines: nil depth profile")
	}
	if widthNM <= 0 {
		return nil, fmt.Errorf("plan lines: region width must be positive, got %g NM", widthNM)
	}

	firstSwathM := SwathWidthM(profile(0), p.HalfBeamAngleDeg)
	if firstSwathM <= 0 || math.IsNaN(firstSwathM) || math.IsInf(firstSwathM, 0) {
		return nil, fmt.Errorf("plan lines: non-positive swath width %g m at x=0 (depth or beam angle misconfigured)", firstSwathM)
	}

	var positions []float64
	x := 0.5 * units.MetersToNauticalMiles(firstSwathM)

	for x < widthNM+boundaryToleranceNM {
		positions = append(positions, x)
		if len(positions) >= maxLines {
			return nil, fmt.Errorf("plan lines: exceeded %d lines without reaching the right edge; spacing loop is not advancing", maxLines)
		}

		swathM := SwathWidthM(profile(x), p.HalfBeamAngleDeg)
		if swathM <= 0 || math.IsNaN(swathM) || math.IsInf(swathM, 0) {
			return nil, fmt.Errorf("plan lines: non-positive swath width %g m at x=%g NM", swathM, x)
		}

		stepNM := units.MetersToNauticalMiles(swathM * p.SpacingFactor)
		if stepNM <= 0 {
			return nil, fmt.Errorf("plan lines: non-positive advancement %g NM at x=%g NM (spacing factor %g)", stepNM, x, p.SpacingFactor)
		}
		x += stepNM
	}

	return positions, nil
}
