package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoInput is returned when no input workbook is configured.
	ErrNoInput = errors.New("no input workbook: set input or use --input")

	// ErrNoOutput is returned when no output directory is configured.
	ErrNoOutput = errors.New("no output directory: set output or use --output")

	// ErrInvalidBaseURL is returned when base_url is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base_url: must be an absolute http or https URL")

	// ErrUnknownColumn is returned when columns maps a field that does not exist.
	ErrUnknownColumn = errors.New("unknown field in columns")

	// ErrOutputIsInput is returned when the output directory is the input file.
	ErrOutputIsInput = errors.New("output directory must differ from the input workbook")
)

// ErrConfigNotFound is returned when an explicitly named configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
