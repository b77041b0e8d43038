package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name declared in Config tags.
const EnvPrefix = "GOPHAUTH_CLIENT_"

func parseEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}
