// Package config loads replay tuning parameters from a JSON file. Fields
// are pointer-typed so a partial config only overrides what it names; the
// Get* accessors supply defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/regatta-data/race.replay/internal/units"
)

// ReplayConfig is the root tuning document for the replay tools.
type ReplayConfig struct {
	// WindowSeconds is the rolling-average speed window.
	WindowSeconds *int `json:"window_seconds,omitempty"`

	// StepMs is the replay query step in milliseconds.
	StepMs *int64 `json:"step_ms,omitempty"`

	// SpeedUnits selects the output unit for speeds (kn, mps, kmph).
	SpeedUnits *string `json:"speed_units,omitempty"`

	// ProfilingCapacity is the per-operation ring size of the query-timing
	// collector.
	ProfilingCapacity *int `json:"profiling_capacity,omitempty"`

	// ChartTheme is the go-echarts theme used by the chart tool.
	ChartTheme *string `json:"chart_theme,omitempty"`
}

// Empty returns a ReplayConfig with all fields unset.
func Empty() *ReplayConfig {
	return &ReplayConfig{}
}

// Load reads and validates a replay config file. The file must have a .json
// extension and stay under 1MB.
func Load(path string) (*ReplayConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all set values are usable.
func (c *ReplayConfig) Validate() error {
	if c.WindowSeconds != nil && *c.WindowSeconds <= 0 {
		return fmt.Errorf("window_seconds must be positive, got %d", *c.WindowSeconds)
	}
	if c.StepMs != nil && *c.StepMs <= 0 {
		return fmt.Errorf("step_ms must be positive, got %d", *c.StepMs)
	}
	if c.SpeedUnits != nil && !units.IsValid(*c.SpeedUnits) {
		return fmt.Errorf("speed_units must be one of %v, got %q", units.ValidUnits, *c.SpeedUnits)
	}
	if c.ProfilingCapacity != nil && *c.ProfilingCapacity <= 0 {
		return fmt.Errorf("profiling_capacity must be positive, got %d", *c.ProfilingCapacity)
	}
	return nil
}

// GetWindowSeconds returns window_seconds or the default.
func (c *ReplayConfig) GetWindowSeconds() int {
	if c.WindowSeconds == nil {
		return 30
	}
	return *c.WindowSeconds
}

// GetStepMs returns step_ms or the default.
func (c *ReplayConfig) GetStepMs() int64 {
	if c.StepMs == nil {
		return 1000
	}
	return *c.StepMs
}

// GetSpeedUnits returns speed_units or the default.
func (c *ReplayConfig) GetSpeedUnits() string {
	if c.SpeedUnits == nil {
		return units.Knots
	}
	return *c.SpeedUnits
}

// GetProfilingCapacity returns profiling_capacity or the default.
func (c *ReplayConfig) GetProfilingCapacity() int {
	if c.ProfilingCapacity == nil {
		return 256
	}
	return *c.ProfilingCapacity
}

// GetChartTheme returns chart_theme or the default.
func (c *ReplayConfig) GetChartTheme() string {
	if c.ChartTheme == nil {
		return "dark"
	}
	return *c.ChartTheme
}
