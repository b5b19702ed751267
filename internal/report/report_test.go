package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seabed-data/surveyfig/internal/bathymetry"
	"github.com/seabed-data/surveyfig/internal/survey"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	region := bathymetry.DefaultRegion()
	region.NX, region.NY = 40, 50
	field, err := bathymetry.Synthesize(region)
	require.NoError(t, err)

	adaptive := survey.MetricSet{PathLengthNM: 650, CoverageGapPct: 0.4, AvgOverlapPct: 22}
	baseline := survey.MetricSet{PathLengthNM: 1430, CoverageGapPct: 0.1, AvgOverlapPct: 77.9}

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, Write(field, adaptive, baseline, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.True(t, strings.Contains(html, "Bathymetric Surface"))
	assert.True(t, strings.Contains(html, "Survey Method Comparison"))
	assert.True(t, strings.Contains(html, "Fixed-Spacing Baseline"))
}

func TestWriteReportUnwritablePath(t *testing.T) {
	t.Parallel()

	region := bathymetry.DefaultRegion()
	region.NX, region.NY = 10, 10
	field, err := bathymetry.Synthesize(region)
	require.NoError(t, err)

	err = Write(field, survey.MetricSet{}, survey.MetricSet{}, filepath.Join(t.TempDir(), "missing", "report.html"))
	assert.Error(t, err)
}
