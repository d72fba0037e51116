package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// GraphPath points at an .hcl file or a directory of .hcl files holding
	// operator manifests and the graph declaration.
	GraphPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}
