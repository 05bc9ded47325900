// Package config resolves environment descriptor files into the set of
// clusters a command operates on.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const envDirVar = "DBFLEET_ENV_DIR"

// EnvDir returns the root directory holding environment descriptor files.
// The directory is named by DBFLEET_ENV_DIR; running without it is a
// configuration error, not something to default around.
func EnvDir() (string, error) {
	v := viper.New()
	v.SetEnvPrefix("DBFLEET")
	if err := v.BindEnv("env_dir"); err != nil {
		return "", err
	}

	dir := v.GetString("env_dir")
	if dir == "" {
		return "", fmt.Errorf("%s is not set: it must point at the environments directory", envDirVar)
	}
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%s points at an unreadable directory: %w", envDirVar, err)
	}
	return dir, nil
}
