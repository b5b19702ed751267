// Package main generates the AUV survey planning figures: a synthetic
// bathymetry map, the adaptively spaced survey lines over it, and a metrics
// comparison against a fixed-spacing baseline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/seabed-data/surveyfig/internal/bathymetry"
	"github.com/seabed-data/surveyfig/internal/config"
	"github.com/seabed-data/surveyfig/internal/monitoring"
	"github.com/seabed-data/surveyfig/internal/plandb"
	"github.com/seabed-data/surveyfig/internal/planner"
	"github.com/seabed-data/surveyfig/internal/render"
	"github.com/seabed-data/surveyfig/internal/report"
	"github.com/seabed-data/surveyfig/internal/survey"
)

// Config holds the command line options.
type Config struct {
	OutputDir  string
	ConfigFile string
	DBFile     string
	DPI        int
	HTMLReport bool
	Reference  bool
	Verbose    bool
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.OutputDir, "out", ".", "Output directory for figures")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to scenario JSON config (defaults apply when empty)")
	flag.StringVar(&cfg.DBFile, "db", "", "SQLite file to record the run in (empty disables persistence)")
	flag.IntVar(&cfg.DPI, "dpi", 0, "Raster resolution override (0 uses the scenario value)")
	flag.BoolVar(&cfg.HTMLReport, "report", false, "Also write an interactive HTML report")
	flag.BoolVar(&cfg.Reference, "reference", false, "Use the previously published adaptive metrics in figure 3 instead of measuring the plan")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")

	flag.Parse()

	return cfg
}

func main() {
	cfg := parseFlags()
	monitoring.SetVerbose(cfg.Verbose)

	if err := run(cfg); err != nil {
		log.Fatalf("surveyfig: %v", err)
	}
}

func run(cfg Config) error {
	scenario := config.EmptyScenarioConfig()
	if cfg.ConfigFile != "" {
		loaded, err := config.LoadScenarioConfig(cfg.ConfigFile)
		if err != nil {
			return err
		}
		scenario = loaded
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	region := bathymetry.Region{
		WidthNM:  scenario.GetRegionWidthNM(),
		HeightNM: scenario.GetRegionHeightNM(),
		ShallowM: scenario.GetDepthShallowM(),
		DeepM:    scenario.GetDepthDeepM(),
		NX:       scenario.GetGridNX(),
		NY:       scenario.GetGridNY(),
	}

	monitoring.Logf("synthesizing %gx%g NM bathymetry grid (%dx%d)", region.WidthNM, region.HeightNM, region.NX, region.NY)
	field, err := bathymetry.Synthesize(region)
	if err != nil {
		return err
	}
	stats := field.Stats()
	monitoring.Debugf("depth range %.1f-%.1f m, mean %.1f m", stats.MinDepthM, stats.MaxDepthM, stats.MeanDepthM)

	params := planner.Params{
		HalfBeamAngleDeg: scenario.GetHalfBeamAngleDeg(),
		SpacingFactor:    scenario.GetSpacingFactor(),
	}
	positions, err := planner.PlanLines(field.NorthEdgeDepth, region.WidthNM, params)
	if err != nil {
		return err
	}
	monitoring.Logf("planned %d survey lines", len(positions))

	adaptive, err := survey.PlanMetrics(field, positions, params.HalfBeamAngleDeg)
	if err != nil {
		return err
	}
	baseline, err := survey.BaselineMetrics(field, scenario.GetBaselineSpacingRatio(), params.HalfBeamAngleDeg)
	if err != nil {
		return err
	}

	// Figure 3 normally shows the measured plan. The -reference flag swaps
	// in the previously published adaptive numbers so output can be checked
	// against the earlier figures.
	figureAdaptive := adaptive
	if cfg.Reference {
		figureAdaptive = survey.ReferenceAdaptiveMetrics()
		monitoring.Logf("using published reference metrics for figure 3")
	}

	style := render.DefaultStyle()
	style.DPI = int(scenario.GetDPI())
	if cfg.DPI > 0 {
		style.DPI = cfg.DPI
	}

	figures := []struct {
		name   string
		render func(string) error
	}{
		{"figure1.png", func(path string) error { return render.Figure1(field, style, path) }},
		{"figure2.png", func(path string) error { return render.Figure2(field, positions, style, path) }},
		{"figure3.png", func(path string) error { return render.Figure3(figureAdaptive, baseline.MetricSet, style, path) }},
	}
	for _, fig := range figures {
		path := filepath.Join(cfg.OutputDir, fig.name)
		if err := fig.render(path); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", path)
	}

	if cfg.HTMLReport {
		path := filepath.Join(cfg.OutputDir, "report.html")
		if err := report.Write(field, figureAdaptive, baseline.MetricSet, path); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", path)
	}

	if cfg.DBFile != "" {
		if err := saveRun(cfg.DBFile, scenario, positions, adaptive, baseline.MetricSet); err != nil {
			return err
		}
	}

	imp := survey.ComputeImprovements(figureAdaptive, baseline.MetricSet)
	fmt.Print(survey.FormatTable(figureAdaptive, baseline.MetricSet, imp))

	return nil
}

func saveRun(dbFile string, scenario *config.ScenarioConfig, positions []float64, adaptive, baseline survey.MetricSet) error {
	db, err := plandb.Open(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	scenarioJSON, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}

	id, err := db.SaveRun(&plandb.Run{
		ScenarioJSON:   scenarioJSON,
		TrackPositions: positions,
		Adaptive:       adaptive,
		Baseline:       baseline,
	})
	if err != nil {
		return err
	}
	monitoring.Logf("recorded run %s in %s", id, dbFile)
	return nil
}
