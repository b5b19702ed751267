// Package render draws the three output figures with gonum/plot: the
// bathymetry map, the survey line overlay, and the metrics comparison chart.
package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/seabed-data/surveyfig/internal/bathymetry"
	"github.com/seabed-data/surveyfig/internal/survey"
)

// Style is the explicit rendering configuration passed to every figure. It
// replaces the ambient global styling state the figures were originally
// produced with.
type Style struct {
	WidthIn      float64 // canvas width in inches
	HeightIn     float64 // canvas height in inches
	DPI          int     // raster resolution
	LineWidthPt  float64 // survey line core width in points
	ContourCount int     // number of depth contour levels
}

// DefaultStyle returns the publication defaults.
func DefaultStyle() Style {
	return Style{
		WidthIn:      8,
		HeightIn:     6,
		DPI:          300,
		LineWidthPt:  1.2,
		ContourCount: 20,
	}
}

// Figure1 renders the bathymetry field as a filled heatmap with contour
// lines, blue (deep) to red (shallow end of the ramp), north at the top.
func Figure1(field *bathymetry.Field, s Style, path string) error {
	p := bathymetryPlot(field, s)
	if err := savePNG(p, s, path); err != nil {
		return fmt.Errorf("figure1: %w", err)
	}
	return nil
}

// Figure2 renders the survey plan: the bathymetry base map with one vertical
// line per track position, drawn as a yellow core over a black outline.
func Figure2(field *bathymetry.Field, positions []float64, s Style, path string) error {
	p := bathymetryPlot(field, s)

	heightNM := field.Region().HeightNM
	yellow := color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}

	for i, x := range positions {
		pts := plotter.XYs{{X: x, Y: 0}, {X: x, Y: heightNM}}

		outline, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("figure2: line outline at %g NM: %w", x, err)
		}
		outline.Color = color.Black
		outline.Width = vg.Points(s.LineWidthPt + 0.8)
		p.Add(outline)

		core, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("figure2: line core at %g NM: %w", x, err)
		}
		core.Color = yellow
		core.Width = vg.Points(s.LineWidthPt)
		p.Add(core)

		if i == 0 {
			p.Legend.Add("Survey Lines", core)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = false

	if err := savePNG(p, s, path); err != nil {
		return fmt.Errorf("figure2: %w", err)
	}
	return nil
}

// Figure3 renders the grouped bar chart comparing the adaptive plan against
// the fixed-spacing baseline for path length, coverage gap, and overlap.
func Figure3(adaptive, baseline survey.MetricSet, s Style, path string) error {
	p := plot.New()
	p.Title.Text = "Survey Method Comparison"
	p.Y.Label.Text = "Metric Value"

	adaptiveVals := plotter.Values{adaptive.PathLengthNM, adaptive.CoverageGapPct, adaptive.AvgOverlapPct}
	baselineVals := plotter.Values{baseline.PathLengthNM, baseline.CoverageGapPct, baseline.AvgOverlapPct}

	barWidth := vg.Points(22)

	adaptiveBars, err := plotter.NewBarChart(adaptiveVals, barWidth)
	if err != nil {
		return fmt.Errorf("figure3: adaptive bars: %w", err)
	}
	adaptiveBars.Color = color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff} // royal blue
	adaptiveBars.Offset = -barWidth / 2

	baselineBars, err := plotter.NewBarChart(baselineVals, barWidth)
	if err != nil {
		return fmt.Errorf("figure3: baseline bars: %w", err)
	}
	baselineBars.Color = color.RGBA{R: 0xf0, G: 0x80, B: 0x80, A: 0xff} // light coral
	baselineBars.Offset = barWidth / 2

	p.Add(adaptiveBars, baselineBars)
	p.Legend.Add("Adaptive Method", adaptiveBars)
	p.Legend.Add("Fixed-Spacing Baseline", baselineBars)
	p.Legend.Top = true
	p.NominalX("Total Path Length (NM)", "Coverage Gap (%)", "Average Overlap (%)")

	labels, err := barValueLabels(adaptiveVals, baselineVals)
	if err != nil {
		return fmt.Errorf("figure3: %w", err)
	}
	p.Add(labels)

	if err := savePNG(p, s, path); err != nil {
		return fmt.Errorf("figure3: %w", err)
	}
	return nil
}

// bathymetryPlot builds the shared base map: filled heatmap plus contour
// lines over a diverging palette, axes in nautical miles with north (y=0) at
// the top.
func bathymetryPlot(field *bathymetry.Field, s Style) *plot.Plot {
	levels := s.ContourCount
	if levels < 2 {
		levels = 2
	}

	stats := field.Stats()
	cm := moreland.SmoothBlueRed()
	cm.SetMin(stats.MinDepthM)
	cm.SetMax(stats.MaxDepthM)
	pal := cm.Palette(255)

	p := plot.New()
	p.X.Label.Text = "East-West Distance (NM)"
	p.Y.Label.Text = "North-South Distance (NM)"
	// Northwest corner at the top left, as on a chart.
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	heat := plotter.NewHeatMap(field, pal)
	p.Add(heat)

	contour := plotter.NewContour(field, contourLevels(stats.MinDepthM, stats.MaxDepthM, levels), pal)
	p.Add(contour)

	return p
}

// contourLevels returns n evenly spaced depth levels strictly inside
// [min, max].
func contourLevels(min, max float64, n int) []float64 {
	levels := make([]float64, n)
	step := (max - min) / float64(n+1)
	for i := range levels {
		levels[i] = min + step*float64(i+1)
	}
	return levels
}

// barValueLabels annotates each bar with its value. Nominal categories sit at
// x = 0, 1, 2; the labels are nudged sideways to match the bar offsets.
func barValueLabels(adaptive, baseline plotter.Values) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for i := range adaptive {
		xys = append(xys, plotter.XY{X: float64(i) - 0.3, Y: adaptive[i]})
		texts = append(texts, fmt.Sprintf("%.1f", adaptive[i]))
		xys = append(xys, plotter.XY{X: float64(i) + 0.05, Y: baseline[i]})
		texts = append(texts, fmt.Sprintf("%.1f", baseline[i]))
	}
	return plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
}

// savePNG rasterizes the plot at the configured size and DPI.
func savePNG(p *plot.Plot, s Style, path string) error {
	if s.DPI <= 0 {
		return fmt.Errorf("save %s: dpi must be positive, got %d", path, s.DPI)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(s.WidthIn)*vg.Inch, vg.Length(s.HeightIn)*vg.Inch),
		vgimg.UseDPI(s.DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
