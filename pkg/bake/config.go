package bake

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings are the file-configurable knobs for bake and capture passes.
// Fields absent from the file keep their defaults.
type Settings struct {
	ThetaRes    int     `toml:"theta_res"`
	PhiRes      int     `toml:"phi_res"`
	Samples     int     `toml:"samples"`
	UnitScale   float64 `toml:"unit_scale"`
	CubemapDir  string  `toml:"cubemap_dir"`
	CubemapSize int     `toml:"cubemap_size"`
	FPS         float64 `toml:"fps"`
	TargetFPS   float64 `toml:"target_fps"`
	Gamma       float64 `toml:"gamma"`
	SkyOnly     bool    `toml:"sky_only"`
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		ThetaRes:    10,
		PhiRes:      20,
		Samples:     50,
		UnitScale:   1.0,
		CubemapSize: 256,
		FPS:         24,
		TargetFPS:   24,
		Gamma:       2.2,
	}
}

// LoadSettings reads a TOML settings file over the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("loading settings from %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects settings no pass could run with.
func (s Settings) Validate() error {
	if s.ThetaRes < 1 || s.PhiRes < 1 {
		return fmt.Errorf("grid resolution must be at least 1x1, got %dx%d", s.ThetaRes, s.PhiRes)
	}
	if s.Samples < 1 {
		return fmt.Errorf("samples must be positive, got %d", s.Samples)
	}
	if s.UnitScale <= 0 {
		return fmt.Errorf("unit scale must be positive, got %f", s.UnitScale)
	}
	if s.CubemapSize < 1 {
		return fmt.Errorf("cubemap size must be positive, got %d", s.CubemapSize)
	}
	if s.FPS <= 0 || s.TargetFPS <= 0 {
		return fmt.Errorf("frame rates must be positive, got %f/%f", s.FPS, s.TargetFPS)
	}
	if s.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %f", s.Gamma)
	}
	return nil
}
