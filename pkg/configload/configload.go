// Package configload reads a GeneratorConfig from a YAML or JSON file on
// disk for the synthgen CLI. It mirrors the viper-based layering
// internal/config.Load uses for the server's own configuration, scaled
// down to a single required file and no environment overlay.
package configload

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	generator "synthgen/internal/core/domain/generator"
)

// Load reads path (extension selects the decoder; viper supports yaml,
// yml, and json) into a GeneratorConfig. A fresh viper instance is used
// per call so this never collides with internal/config's global viper
// state when both run in the same process (the "serve" subcommand calls
// config.Load separately).
func Load(path string) (*generator.GeneratorConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg generator.GeneratorConfig
	// RFC 3339 strings such as time_window.start_time decode into time.Time.
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshal config file %s: %w", path, err)
	}
	return &cfg, nil
}
