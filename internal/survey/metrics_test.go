package survey

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seabed-data/surveyfig/internal/bathymetry"
	"github.com/seabed-data/surveyfig/internal/planner"
)

func defaultField(t *testing.T) *bathymetry.Field {
	t.Helper()
	field, err := bathymetry.Synthesize(bathymetry.DefaultRegion())
	require.NoError(t, err)
	return field
}

func TestBaselineMetricsHandComputed(t *testing.T) {
	t.Parallel()

	field := defaultField(t)

	// The grid minimum is exactly the 25 m northwest corner: every
	// perturbation term is non-negative at its own minimum locations
	// relative to the slope, so nothing dips below the corner.
	stats := field.Stats()
	require.InDelta(t, 25.0, stats.MinDepthM, 1e-9)

	baseline, err := BaselineMetrics(field, 0.9, 30)
	require.NoError(t, err)

	// Hand-computed from the constants: W_min = 2*25*tan(30 deg) = 28.8675 m,
	// d_fixed = 0.9*W_min = 25.9808 m, lines = ceil(4*1852 / 25.9808) = 286,
	// path = 286 lines * 5 NM.
	assert.InDelta(t, 25.9808, baseline.FixedSpacingM, 1e-3)
	assert.Equal(t, 286, baseline.LineCount)
	assert.InDelta(t, 1430.0, baseline.PathLengthNM, 1e-9)

	// Gap is the documented policy constant.
	assert.InDelta(t, 0.100, baseline.CoverageGapPct, 1e-12)

	// Mean depth is far below the regional maximum, so fixed spacing from
	// the shallowest point wastes most of the average swath.
	assert.Greater(t, baseline.AvgOverlapPct, 70.0)
	assert.Less(t, baseline.AvgOverlapPct, 85.0)

	// Cross-check overlap against its defining formula.
	wAvg := planner.SwathWidthM(stats.MeanDepthM, 30)
	assert.InDelta(t, (1-baseline.FixedSpacingM/wAvg)*100, baseline.AvgOverlapPct, 1e-9)
}

func TestBaselineLineCountIsCeiling(t *testing.T) {
	t.Parallel()

	field := defaultField(t)
	baseline, err := BaselineMetrics(field, 0.9, 30)
	require.NoError(t, err)

	widthM := field.Region().WidthNM * 1852.0
	want := int(math.Ceil(widthM / baseline.FixedSpacingM))
	assert.Equal(t, want, baseline.LineCount)
	assert.InDelta(t, float64(want)*field.Region().HeightNM, baseline.PathLengthNM, 1e-9)
}

func TestBaselineMetricsRejectsDegenerateBeam(t *testing.T) {
	t.Parallel()

	field := defaultField(t)
	_, err := BaselineMetrics(field, 0.9, 0)
	assert.Error(t, err)
}

func TestPlanMetricsFromRealPlan(t *testing.T) {
	t.Parallel()

	field := defaultField(t)
	params := planner.DefaultParams()
	positions, err := planner.PlanLines(field.NorthEdgeDepth, field.Region().WidthNM, params)
	require.NoError(t, err)

	metrics, err := PlanMetrics(field, positions, params.HalfBeamAngleDeg)
	require.NoError(t, err)

	// Path length is line count times region height.
	assert.InDelta(t, float64(len(positions))*field.Region().HeightNM, metrics.PathLengthNM, 1e-9)

	// Spacing leaves at most a slim gap: a 1.02 factor gives up 2% of the
	// swath between neighbors at the northern edge and the terrain only
	// deepens southward.
	assert.GreaterOrEqual(t, metrics.CoverageGapPct, 0.0)
	assert.Less(t, metrics.CoverageGapPct, 5.0)

	// Depth grows along most lines, so adjacent swaths overlap on average.
	assert.Greater(t, metrics.AvgOverlapPct, 0.0)
	assert.Less(t, metrics.AvgOverlapPct, 100.0)
}

func TestPlanMetricsAdaptiveBeatsBaselinePathLength(t *testing.T) {
	t.Parallel()

	field := defaultField(t)
	params := planner.DefaultParams()
	positions, err := planner.PlanLines(field.NorthEdgeDepth, field.Region().WidthNM, params)
	require.NoError(t, err)

	adaptive, err := PlanMetrics(field, positions, params.HalfBeamAngleDeg)
	require.NoError(t, err)
	baseline, err := BaselineMetrics(field, 0.9, params.HalfBeamAngleDeg)
	require.NoError(t, err)

	assert.Less(t, adaptive.PathLengthNM, baseline.PathLengthNM)
}

func TestPlanMetricsEmptyPlan(t *testing.T) {
	t.Parallel()

	field := defaultField(t)
	_, err := PlanMetrics(field, nil, 30)
	assert.Error(t, err)
}

func TestReferenceAdaptiveMetrics(t *testing.T) {
	t.Parallel()

	ref := ReferenceAdaptiveMetrics()
	assert.Equal(t, 180.0, ref.PathLengthNM)
	assert.Equal(t, 0.214, ref.CoverageGapPct)
	assert.Equal(t, 15.0, ref.AvgOverlapPct)
}

func TestComputeImprovements(t *testing.T) {
	t.Parallel()

	adaptive := MetricSet{PathLengthNM: 180, CoverageGapPct: 0.214, AvgOverlapPct: 15}
	baseline := MetricSet{PathLengthNM: 1430, CoverageGapPct: 0.100, AvgOverlapPct: 75}

	imp := ComputeImprovements(adaptive, baseline)
	assert.InDelta(t, (1430.0-180.0)/1430.0*100, imp.PathLengthPct, 1e-9)
	assert.InDelta(t, (75.0-15.0)/75.0*100, imp.OverlapPct, 1e-9)

	// Zero baselines do not divide by zero.
	imp = ComputeImprovements(adaptive, MetricSet{})
	assert.Equal(t, 0.0, imp.PathLengthPct)
	assert.Equal(t, 0.0, imp.OverlapPct)
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	adaptive := MetricSet{PathLengthNM: 180, CoverageGapPct: 0.214, AvgOverlapPct: 15}
	baseline := MetricSet{PathLengthNM: 1430, CoverageGapPct: 0.100, AvgOverlapPct: 77.9}

	table := FormatTable(adaptive, baseline, ComputeImprovements(adaptive, baseline))
	assert.True(t, strings.Contains(table, "Total Path Length (NM)"))
	assert.True(t, strings.Contains(table, "Coverage Gap (%)"))
	assert.True(t, strings.Contains(table, "Average Overlap (%)"))
	assert.True(t, strings.Contains(table, "1430"))
	assert.True(t, strings.Contains(table, "0.214"))
}
