package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto cfg. Variables from the
// dotenv file apply only where the environment does not set them.
func parseEnv(cfg *Config, environ map[string]string, dotenvPath string) error {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	merged := map[string]string{}
	if dotenvPath != "" {
		fromFile, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("dotenv %s: %w", dotenvPath, err)
		}
		maps.Copy(merged, fromFile)
	}
	maps.Copy(merged, environ)

	if err := env.ParseWithOptions(cfg, env.Options{Environment: merged}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}
