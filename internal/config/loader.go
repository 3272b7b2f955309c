package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project configuration file name.
const DefaultConfigFile = ".storesite.yaml"

// UserConfigFile is the configuration file name inside XDGConfigDir.
const UserConfigFile = "config.yaml"

// LoadFile reads a YAML configuration file on top of the defaults.
// Unknown keys are rejected so that typos do not pass silently.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// FindFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .storesite.yaml in the current directory
// 3. Look for config.yaml in XDGConfigDir
//
// It returns "" when no file is found, and ErrConfigNotFound when the
// explicitly named file does not exist.
func FindFile(configPath string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return findFile(configPath, cwd, XDGConfigDir())
}

func findFile(configPath, cwd, userDir string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return configPath, nil
	}

	var candidates []string
	if cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if userDir != "" {
		candidates = append(candidates, filepath.Join(userDir, UserConfigFile))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// Load finds and reads the configuration file, returning the defaults when
// there is none. The second result is the file that was read, if any.
func Load(configPath string) (*Config, string, error) {
	path, err := FindFile(configPath)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return NewConfig(), "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
