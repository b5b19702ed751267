package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ScenarioConfig represents the survey scenario parameters. All fields are
// optional in the JSON file; the Get* methods provide the published defaults
// (a 4x5 NM region with 25-175 m of depth and a 60 degree sonar beam), so
// partial configs are safe.
type ScenarioConfig struct {
	// Region geometry
	RegionWidthNM  *float64 `json:"region_width_nm,omitempty"`
	RegionHeightNM *float64 `json:"region_height_nm,omitempty"`
	DepthShallowM  *float64 `json:"depth_shallow_m,omitempty"`
	DepthDeepM     *float64 `json:"depth_deep_m,omitempty"`
	GridNX         *int     `json:"grid_nx,omitempty"`
	GridNY         *int     `json:"grid_ny,omitempty"`

	// Sonar and spacing params
	HalfBeamAngleDeg     *float64 `json:"half_beam_angle_deg,omitempty"`
	SpacingFactor        *float64 `json:"spacing_factor,omitempty"`
	BaselineSpacingRatio *float64 `json:"baseline_spacing_ratio,omitempty"`

	// Rendering params
	DPI *float64 `json:"dpi,omitempty"`
}

// EmptyScenarioConfig returns a ScenarioConfig with all fields set to nil so
// every accessor falls back to its default.
func EmptyScenarioConfig() *ScenarioConfig {
	return &ScenarioConfig{}
}

// LoadScenarioConfig loads a ScenarioConfig from a JSON file. The file is
// validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyScenarioConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable. Degenerate region
// dimensions or beam angles would otherwise surface as division by zero or a
// non-advancing cursor deep in the spacing loop.
func (c *ScenarioConfig) Validate() error {
	if c.RegionWidthNM != nil && *c.RegionWidthNM <= 0 {
		return fmt.Errorf("region_width_nm must be positive, got %f", *c.RegionWidthNM)
	}
	if c.RegionHeightNM != nil && *c.RegionHeightNM <= 0 {
		return fmt.Errorf("region_height_nm must be positive, got %f", *c.RegionHeightNM)
	}
	if c.DepthShallowM != nil && *c.DepthShallowM <= 0 {
		return fmt.Errorf("depth_shallow_m must be positive, got %f", *c.DepthShallowM)
	}
	if c.DepthDeepM != nil && c.DepthShallowM != nil && *c.DepthDeepM < *c.DepthShallowM {
		return fmt.Errorf("depth_deep_m (%f) must not be shallower than depth_shallow_m (%f)",
			*c.DepthDeepM, *c.DepthShallowM)
	}
	if c.GridNX != nil && *c.GridNX < 2 {
		return fmt.Errorf("grid_nx must be at least 2, got %d", *c.GridNX)
	}
	if c.GridNY != nil && *c.GridNY < 2 {
		return fmt.Errorf("grid_ny must be at least 2, got %d", *c.GridNY)
	}
	if c.HalfBeamAngleDeg != nil {
		if *c.HalfBeamAngleDeg <= 0 || *c.HalfBeamAngleDeg >= 90 {
			return fmt.Errorf("half_beam_angle_deg must be in (0, 90), got %f", *c.HalfBeamAngleDeg)
		}
	}
	if c.SpacingFactor != nil && *c.SpacingFactor <= 0 {
		return fmt.Errorf("spacing_factor must be positive, got %f", *c.SpacingFactor)
	}
	if c.BaselineSpacingRatio != nil {
		if *c.BaselineSpacingRatio <= 0 || *c.BaselineSpacingRatio > 1 {
			return fmt.Errorf("baseline_spacing_ratio must be in (0, 1], got %f", *c.BaselineSpacingRatio)
		}
	}
	if c.DPI != nil && *c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %f", *c.DPI)
	}
	return nil
}

// GetRegionWidthNM returns the region width or the default.
func (c *ScenarioConfig) GetRegionWidthNM() float64 {
	if c.RegionWidthNM == nil {
		return 4.0
	}
	return *c.RegionWidthNM
}

// GetRegionHeightNM returns the region height or the default.
func (c *ScenarioConfig) GetRegionHeightNM() float64 {
	if c.RegionHeightNM == nil {
		return 5.0
	}
	return *c.RegionHeightNM
}

// GetDepthShallowM returns the shallow depth or the default.
func (c *ScenarioConfig) GetDepthShallowM() float64 {
	if c.DepthShallowM == nil {
		return 25.0
	}
	return *c.DepthShallowM
}

// GetDepthDeepM returns the deep depth or the default.
func (c *ScenarioConfig) GetDepthDeepM() float64 {
	if c.DepthDeepM == nil {
		return 175.0
	}
	return *c.DepthDeepM
}

// GetGridNX returns the number of grid columns or the default.
func (c *ScenarioConfig) GetGridNX() int {
	if c.GridNX == nil {
		return 400
	}
	return *c.GridNX
}

// GetGridNY returns the number of grid rows or the default.
func (c *ScenarioConfig) GetGridNY() int {
	if c.GridNY == nil {
		return 500
	}
	return *c.GridNY
}

// GetHalfBeamAngleDeg returns the sonar half beam angle or the default.
func (c *ScenarioConfig) GetHalfBeamAngleDeg() float64 {
	if c.HalfBeamAngleDeg == nil {
		return 30.0
	}
	return *c.HalfBeamAngleDeg
}

// GetSpacingFactor returns the adaptive spacing factor or the default.
// Slightly above 1.0 leaves a small deliberate gap between adjacent swaths.
func (c *ScenarioConfig) GetSpacingFactor() float64 {
	if c.SpacingFactor == nil {
		return 1.02
	}
	return *c.SpacingFactor
}

// GetBaselineSpacingRatio returns the fixed-spacing ratio or the default.
// 0.9 yields roughly 10% overlap at the shallowest point in the region.
func (c *ScenarioConfig) GetBaselineSpacingRatio() float64 {
	if c.BaselineSpacingRatio == nil {
		return 0.9
	}
	return *c.BaselineSpacingRatio
}

// GetDPI returns the raster output resolution or the default.
func (c *ScenarioConfig) GetDPI() float64 {
	if c.DPI == nil {
		return 300.0
	}
	return *c.DPI
}
