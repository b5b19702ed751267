// Package bathymetry synthesizes the deterministic seafloor depth grid used
// by the survey planner and the figure renderers.
//
// The surface is a bilinear slope from the northwest corner (shallowest) to
// the southeast corner (deepest) with four sinusoidal perturbations layered
// on top, two along each axis at different spatial frequencies. The same
// region always produces the same grid; there is no random component.
package bathymetry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Sinusoidal relief amplitudes in meters. Their sum bounds how far the grid
// can stray from the configured shallow/deep range.
const (
	AmpLargeEastWestM   = 20.0 // one full period across the region width
	AmpLargeNorthSouthM = 10.0 // one full period across the region height
	AmpHighFreqM        = 5.0  // period of 0.3x the region width
	AmpMidFreqM         = 8.0  // period of 0.7x the region height
)

// ReliefAmplitudeSumM is the total sinusoidal amplitude budget.
const ReliefAmplitudeSumM = AmpLargeEastWestM + AmpLargeNorthSouthM + AmpHighFreqM + AmpMidFreqM

// Region describes the rectangular survey area and the grid resolution used
// to sample it.
type Region struct {
	WidthNM  float64 // east-west extent, nautical miles
	HeightNM float64 // north-south extent, nautical miles
	ShallowM float64 // depth at the northwest corner, meters
	DeepM    float64 // nominal depth at the southeast corner, meters
	NX       int     // grid columns (east-west samples)
	NY       int     // grid rows (north-south samples)
}

// DefaultRegion returns the published 4x5 NM study area sampled at 400x500.
func DefaultRegion() Region {
	return Region{
		WidthNM:  4,
		HeightNM: 5,
		ShallowM: 25,
		DeepM:    175,
		NX:       400,
		NY:       500,
	}
}

// Validate rejects region parameters that would produce a degenerate grid.
func (r Region) Validate() error {
	if r.WidthNM <= 0 || r.HeightNM <= 0 {
		return fmt.Errorf("region dimensions must be positive, got %gx%g NM", r.WidthNM, r.HeightNM)
	}
	if r.ShallowM <= 0 {
		return fmt.Errorf("shallow depth must be positive, got %g m", r.ShallowM)
	}
	if r.DeepM < r.ShallowM {
		return fmt.Errorf("deep depth %g m is shallower than shallow depth %g m", r.DeepM, r.ShallowM)
	}
	if r.NX < 2 || r.NY < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", r.NX, r.NY)
	}
	return nil
}

// Field holds the synthesized depth grid. Depths are positive meters; row 0
// is the northern edge (y=0) and column 0 the western edge (x=0). The grid is
// immutable once synthesized.
type Field struct {
	region Region
	depths *mat.Dense // NY rows x NX cols
}

// Synthesize builds the depth grid for the region. The output is a total
// function of the grid coordinates.
func Synthesize(r Region) (*Field, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("synthesize bathymetry: %w", err)
	}

	depths := mat.NewDense(r.NY, r.NX, nil)
	for j := 0; j < r.NY; j++ {
		y := r.HeightNM * float64(j) / float64(r.NY-1)
		for i := 0; i < r.NX; i++ {
			x := r.WidthNM * float64(i) / float64(r.NX-1)
			depths.Set(j, i, r.depthAt(x, y))
		}
	}

	return &Field{region: r, depths: depths}, nil
}

// depthAt evaluates the closed-form surface at a point in nautical miles.
func (r Region) depthAt(x, y float64) float64 {
	slope := r.ShallowM + 0.5*((x/r.WidthNM)+(y/r.HeightNM))*(r.DeepM-r.ShallowM)
	relief := AmpLargeEastWestM*math.Sin(2*math.Pi*x/r.WidthNM) +
		AmpLargeNorthSouthM*math.Sin(2*math.Pi*y/r.HeightNM) +
		AmpHighFreqM*math.Sin(2*math.Pi*x/(0.3*r.WidthNM)) +
		AmpMidFreqM*math.Sin(2*math.Pi*y/(0.7*r.HeightNM))
	return slope + relief
}

// Region returns the region the field was synthesized for.
func (f *Field) Region() Region {
	return f.region
}

// Dims returns the grid dimensions as (columns, rows). Together with X, Y and
// Z this satisfies gonum/plot's GridXYZ so the renderers can consume the
// field directly.
func (f *Field) Dims() (c, r int) {
	return f.region.NX, f.region.NY
}

// X returns the east-west coordinate of column c in nautical miles.
func (f *Field) X(c int) float64 {
	return f.region.WidthNM * float64(c) / float64(f.region.NX-1)
}

// Y returns the north-south coordinate of row r in nautical miles.
func (f *Field) Y(r int) float64 {
	return f.region.HeightNM * float64(r) / float64(f.region.NY-1)
}

// Z returns the depth in meters at column c, row r.
func (f *Field) Z(c, r int) float64 {
	return f.depths.At(r, c)
}

// DepthAtIndex returns the depth at grid indices (column i, row j).
func (f *Field) DepthAtIndex(i, j int) float64 {
	return f.depths.At(j, i)
}

// DepthAt returns the bilinearly interpolated depth at a point in nautical
// miles. Coordinates outside the region are clamped to the boundary rather
// than extrapolated.
func (f *Field) DepthAt(xNM, yNM float64) float64 {
	r := f.region

	fx := clamp(xNM/r.WidthNM, 0, 1) * float64(r.NX-1)
	fy := clamp(yNM/r.HeightNM, 0, 1) * float64(r.NY-1)

	i0 := int(fx)
	j0 := int(fy)
	if i0 >= r.NX-1 {
		i0 = r.NX - 2
	}
	if j0 >= r.NY-1 {
		j0 = r.NY - 2
	}
	tx := fx - float64(i0)
	ty := fy - float64(j0)

	d00 := f.depths.At(j0, i0)
	d01 := f.depths.At(j0, i0+1)
	d10 := f.depths.At(j0+1, i0)
	d11 := f.depths.At(j0+1, i0+1)

	top := d00 + tx*(d01-d00)
	bottom := d10 + tx*(d11-d10)
	return top + ty*(bottom-top)
}

// NorthEdgeDepth returns the linearly interpolated depth along the northern
// edge (y=0) at the given east-west position. This is the profile the
// adaptive spacer samples.
func (f *Field) NorthEdgeDepth(xNM float64) float64 {
	r := f.region

	fx := clamp(xNM/r.WidthNM, 0, 1) * float64(r.NX-1)
	i0 := int(fx)
	if i0 >= r.NX-1 {
		i0 = r.NX - 2
	}
	tx := fx - float64(i0)

	d0 := f.depths.At(0, i0)
	d1 := f.depths.At(0, i0+1)
	return d0 + tx*(d1-d0)
}

// Stats summarizes the grid depths.
type Stats struct {
	MinDepthM  float64
	MaxDepthM  float64
	MeanDepthM float64
}

// Stats computes the grid's depth summary in one pass over the raw data.
func (f *Field) Stats() Stats {
	data := f.depths.RawMatrix().Data
	return Stats{
		MinDepthM:  floats.Min(data),
		MaxDepthM:  floats.Max(data),
		MeanDepthM: stat.Mean(data, nil),
	}
}

// ReliefM returns the total depth range across the grid.
func (f *Field) ReliefM() float64 {
	s := f.Stats()
	return s.MaxDepthM - s.MinDepthM
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
