package config

// Config represents the complete crate-surface configuration.
// It can be loaded from .crate-surface/config.yml with environment variable
// overrides. Everything in here is optional tuning around the extractor; the
// extraction semantics themselves are not configurable.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// OutputConfig controls how the extracted document is written.
type OutputConfig struct {
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"` // indent the JSON document
	Path   string `yaml:"path" mapstructure:"path"`     // write to a file instead of stdout
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int      `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-extracting
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`           // glob patterns for paths to ignore
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty: false,
			Path:   "",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
			Ignore: []string{
				"target/**",
				".git/**",
			},
		},
	}
}
