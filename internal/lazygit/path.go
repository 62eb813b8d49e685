package lazygit

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
)

var (
	getEnv      = os.Getenv
	userHomeDir = os.UserHomeDir
	goos        = runtime.GOOS
)

// ConfigFileName is lazygit's config file name.
const ConfigFileName = "config.yml"

// ConfigPath resolves the lazygit config file location for the current platform.
// lazygit's own CONFIG_DIR override takes precedence.
func ConfigPath() (string, error) {
	if dir := getEnv("CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, ConfigFileName), nil
	}

	switch goos {
	case "darwin":
		home, err := userHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		return filepath.Join(home, "Library", "Application Support", "lazygit", ConfigFileName), nil

	case "windows":
		if local := getEnv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "lazygit", ConfigFileName), nil
		}
		home, err := userHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		return filepath.Join(home, "AppData", "Local", "lazygit", ConfigFileName), nil

	default:
		if xdgHome := getEnv("XDG_CONFIG_HOME"); xdgHome != "" {
			return filepath.Join(xdgHome, "lazygit", ConfigFileName), nil
		}
		home, err := userHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		return filepath.Join(home, ".config", "lazygit", ConfigFileName), nil
	}
}
