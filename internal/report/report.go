// Package report writes an interactive HTML companion to the static figures:
// a rotatable 3D bathymetry surface and the metrics comparison chart.
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/seabed-data/surveyfig/internal/bathymetry"
	"github.com/seabed-data/surveyfig/internal/survey"
)

// maxSurfaceSamples caps the per-axis sample count of the 3D surface to keep
// the HTML payload reasonable.
const maxSurfaceSamples = 80

// coolWarmRamp approximates the diverging palette used by the PNG figures.
var coolWarmRamp = []string{
	"#3b4cc0", "#5977e3", "#7b9ff9", "#9ebeff", "#c0d4f5",
	"#dddcdc", "#f2cbb7", "#f7ac8e", "#ee8468", "#d65244", "#b40426",
}

// Write renders the HTML report to path.
func Write(field *bathymetry.Field, adaptive, baseline survey.MetricSet, path string) error {
	page := components.NewPage()
	page.PageTitle = "AUV Survey Plan Report"
	page.AddCharts(
		surfaceChart(field),
		comparisonChart(adaptive, baseline),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("report: render %s: %w", path, err)
	}
	return nil
}

// surfaceChart builds the 3D bathymetry surface from a downsampled grid.
func surfaceChart(field *bathymetry.Field) *charts.Surface3D {
	nx, ny := field.Dims()
	stats := field.Stats()

	strideX := 1
	if nx > maxSurfaceSamples {
		strideX = nx / maxSurfaceSamples
	}
	strideY := 1
	if ny > maxSurfaceSamples {
		strideY = ny / maxSurfaceSamples
	}

	data := make([]opts.Chart3DData, 0, (nx/strideX+1)*(ny/strideY+1))
	for j := 0; j < ny; j += strideY {
		for i := 0; i < nx; i += strideX {
			// Depth is negated so deeper terrain renders lower.
			data = append(data, opts.Chart3DData{
				Value: []interface{}{field.X(i), field.Y(j), -field.Z(i, j)},
			})
		}
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Bathymetric Surface",
			Subtitle: fmt.Sprintf("%gx%g NM, %.1f-%.1f m", field.Region().WidthNM, field.Region().HeightNM, stats.MinDepthM, stats.MaxDepthM),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(-stats.MaxDepthM),
			Max:        float32(-stats.MinDepthM),
			InRange:    &opts.VisualMapInRange{Color: coolWarmRamp},
		}),
	)
	surface.AddSeries("depth", data)
	return surface
}

// comparisonChart builds the grouped metric bars, one series per method.
func comparisonChart(adaptive, baseline survey.MetricSet) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Survey Method Comparison"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis([]string{"Total Path Length (NM)", "Coverage Gap (%)", "Average Overlap (%)"}).
		AddSeries("Adaptive Method", []opts.BarData{
			{Value: adaptive.PathLengthNM},
			{Value: adaptive.CoverageGapPct},
			{Value: adaptive.AvgOverlapPct},
		}).
		AddSeries("Fixed-Spacing Baseline", []opts.BarData{
			{Value: baseline.PathLengthNM},
			{Value: baseline.CoverageGapPct},
			{Value: baseline.AvgOverlapPct},
		})
	return bar
}
