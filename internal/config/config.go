// Package config loads storesite settings from YAML files and flags.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ukaji3/storesite-go/pkg/storesite"
	"github.com/ukaji3/storesite-go/pkg/storesite/parser"
)

// AppName is the application name used for XDG directory paths.
const AppName = "storesite"

// Config holds every build setting. Field names double as YAML keys.
type Config struct {
	Input       string            `yaml:"input"`
	Output      string            `yaml:"output"`
	Sheet       string            `yaml:"sheet"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Lang        string            `yaml:"lang"`
	BaseURL     string            `yaml:"base_url"`
	Placeholder string            `yaml:"placeholder"`
	Clean       bool              `yaml:"clean"`
	Columns     map[string]string `yaml:"columns"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Input:       storesite.DefaultInputPath,
		Output:      storesite.DefaultOutputDir,
		Title:       storesite.DefaultTitle,
		Lang:        storesite.DefaultLang,
		Placeholder: parser.DefaultPlaceholder,
	}
}

// XDGConfigDir returns the per-user configuration directory.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration for values a build cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return ErrNoInput
	}
	if strings.TrimSpace(c.Output) == "" {
		return ErrNoOutput
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return ErrOutputIsInput
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidBaseURL
		}
	}

	fields := make([]string, 0, len(c.Columns))
	for field := range c.Columns {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if !parser.IsKnownField(field) {
			return fmt.Errorf("%w: %q (known: %s)", ErrUnknownColumn, field, strings.Join(parser.KnownFields(), ", "))
		}
	}
	return nil
}

// Options converts the configuration into build options.
func (c *Config) Options(logger *slog.Logger) storesite.Options {
	var columns map[string]string
	if len(c.Columns) > 0 {
		columns = make(map[string]string, len(c.Columns))
		for k, v := range c.Columns {
			columns[k] = v
		}
	}
	return storesite.Options{
		InputPath:   c.Input,
		OutputDir:   c.Output,
		Sheet:       c.Sheet,
		Title:       c.Title,
		Description: c.Description,
		Lang:        c.Lang,
		BaseURL:     c.BaseURL,
		Placeholder: c.Placeholder,
		Columns:     columns,
		Clean:       c.Clean,
		Logger:      logger,
	}
}
