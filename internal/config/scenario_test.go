package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestEmptyScenarioConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyScenarioConfig()
	assert.Equal(t, 4.0, cfg.GetRegionWidthNM())
	assert.Equal(t, 5.0, cfg.GetRegionHeightNM())
	assert.Equal(t, 25.0, cfg.GetDepthShallowM())
	assert.Equal(t, 175.0, cfg.GetDepthDeepM())
	assert.Equal(t, 400, cfg.GetGridNX())
	assert.Equal(t, 500, cfg.GetGridNY())
	assert.Equal(t, 30.0, cfg.GetHalfBeamAngleDeg())
	assert.Equal(t, 1.02, cfg.GetSpacingFactor())
	assert.Equal(t, 0.9, cfg.GetBaselineSpacingRatio())
	assert.Equal(t, 300.0, cfg.GetDPI())
}

func TestLoadScenarioConfigPartial(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "scenario.json", `{
		"region_width_nm": 8,
		"spacing_factor": 1.05
	}`)

	cfg, err := LoadScenarioConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, cfg.GetRegionWidthNM())
	assert.Equal(t, 1.05, cfg.GetSpacingFactor())
	// Omitted fields keep defaults
	assert.Equal(t, 5.0, cfg.GetRegionHeightNM())
	assert.Equal(t, 30.0, cfg.GetHalfBeamAngleDeg())
}

func TestLoadScenarioConfigRejectsNonJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "scenario.yaml", "region_width_nm: 4")
	_, err := LoadScenarioConfig(path)
	assert.Error(t, err)
}

func TestLoadScenarioConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadScenarioConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidateRejectsDegenerateValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"zero width", `{"region_width_nm": 0}`},
		{"negative height", `{"region_height_nm": -5}`},
		{"zero shallow depth", `{"depth_shallow_m": 0}`},
		{"deep above shallow", `{"depth_shallow_m": 100, "depth_deep_m": 50}`},
		{"single column grid", `{"grid_nx": 1}`},
		{"flat beam", `{"half_beam_angle_deg": 0}`},
		{"vertical beam", `{"half_beam_angle_deg": 90}`},
		{"zero spacing factor", `{"spacing_factor": 0}`},
		{"ratio above one", `{"baseline_spacing_ratio": 1.5}`},
		{"zero dpi", `{"dpi": 0}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, "bad.json", tc.body)
			_, err := LoadScenarioConfig(path)
			assert.Error(t, err)
		})
	}
}
