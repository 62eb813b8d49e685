package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

var (
	getEnv      = os.Getenv
	userHomeDir = os.UserHomeDir
)

// AppName names the config directory.
const AppName = "claude-lazygit"

// GlobalConfigPath resolves the global config file path using XDG conventions.
func GlobalConfigPath() (string, error) {
	if xdgHome := getEnv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, AppName, "config.yaml"), nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home dir")
	}

	return filepath.Join(homeDir, ".config", AppName, "config.yaml"), nil
}
