package main

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config holds the settings of a simtree run that don't come from the
// positional arguments. Values are populated from .simtree.yaml, SIMTREE_*
// env vars and flags.
type Config struct {
	Output       string `mapstructure:"output"`
	Seed         uint64 `mapstructure:"seed"`
	Trees        int    `mapstructure:"trees"`
	Workers      int    `mapstructure:"workers"`
	MaxNodes     int    `mapstructure:"max_nodes"`
	PruneExtinct bool   `mapstructure:"prune_extinct"`
	Verbose      bool   `mapstructure:"verbose"`

	// Whether the seed was given explicitly. If not, a random one is drawn
	// and logged.
	HasSeed bool `mapstructure:"-"`
}

// loadConfig reads the configuration from v, applying built-in defaults for
// any values not set by config file, environment or flags.
func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("output", "tree.nwk")
	v.SetDefault("trees", 1)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("max_nodes", 0)
	v.SetDefault("prune_extinct", false)
	v.SetDefault("verbose", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.HasSeed = v.IsSet("seed")
	return cfg, nil
}
