package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name declared in Config tags.
const EnvPrefix = "GOPHAUTH_"

// parseEnv overlays fields whose GOPHAUTH_* variable is set. Unset variables
// leave the current value alone.
func parseEnv(config *Config) error {
	return env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix})
}
