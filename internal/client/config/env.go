package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with STOREFRONT_* environment variables. Unset
// variables leave the current value in place. Panics on malformed values,
// like the other stages.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
