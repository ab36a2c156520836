// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Surface SurfaceConfig `yaml:"surface"`
	GPU     GPUConfig     `yaml:"gpu"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// SurfaceConfig holds default surface generation settings.
type SurfaceConfig struct {
	Type        string          `yaml:"type"`         // "vdw" or "sas"
	ProbeRadius float32         `yaml:"probe_radius"` // Angstroms, only meaningful for "sas"
	Resolution  float32         `yaml:"resolution"`   // grid step in Angstroms, 0 = auto
	Smoothing   SmoothingConfig `yaml:"smoothing"`
}

// SmoothingConfig holds Laplacian smoothing settings.
type SmoothingConfig struct {
	Iterations int     `yaml:"iterations"`
	Lambda     float32 `yaml:"lambda"`
}

// GPUConfig holds GPU field computation settings.
type GPUConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CacheConfig holds surface cache settings.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Surface: SurfaceConfig{
			Type:        "vdw",
			ProbeRadius: 1.4,
			Resolution:  0,
			Smoothing: SmoothingConfig{
				Iterations: 2,
				Lambda:     0.5,
			},
		},
		GPU: GPUConfig{
			Enabled: true,
		},
		Cache: CacheConfig{
			Capacity: 10,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
