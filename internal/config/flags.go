package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagType       = flag.String("type", "", "Surface type: vdw or sas")
	flagProbe      = flag.Float64("probe", 0, "Probe radius in Angstroms (SAS only)")
	flagResolution = flag.Float64("resolution", 0, "Grid step in Angstroms (0 = auto)")
	flagNoGPU      = flag.Bool("no-gpu", false, "Disable GPU field computation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagType != "" {
		cfg.Surface.Type = *flagType
	}
	if *flagProbe > 0 {
		cfg.Surface.ProbeRadius = float32(*flagProbe)
	}
	if *flagResolution > 0 {
		cfg.Surface.Resolution = float32(*flagResolution)
	}
	if *flagNoGPU {
		cfg.GPU.Enabled = false
	}
}
