package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/longkey1/askgpt/internal/askgpt"
	"github.com/spf13/viper"
)

// AppDirName is the directory under ~/.config holding askgpt's files.
const AppDirName = "AskGPT"

// ResolveDir returns the config directory, creating it if it doesn't exist.
// ASKGPT_CONFIG_DIR (or config_dir) takes precedence over $HOME/.config/AskGPT.
func ResolveDir(v *viper.Viper) (string, error) {
	dir := v.GetString("config_dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", AppDirName)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// ResolvePath converts a path relative to the config directory into an
// absolute one. Absolute paths are returned unchanged.
func ResolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LoadAPIKey reads the bearer token from apikey.txt.
func (c *Config) LoadAPIKey() (string, error) {
	path := c.APIKeyPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &askgpt.MissingAPIKeyError{Path: path}
		}
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// MaskToken returns a masked version of the token for logging
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
