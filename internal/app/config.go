package app

import (
	"errors"
	"fmt"
	"time"
)

// Commands the tool understands.
const (
	CommandDump = "dump"
	CommandFind = "find"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // file or directory of .hcl provider manifests

	Command  string // CommandDump or CommandFind
	Query    string // find only
	Detailed bool
	Timeout  time.Duration // bound on per-record remote diagnostics

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	switch cfg.Command {
	case CommandDump:
	case CommandFind:
		if cfg.Query == "" {
			return nil, errors.New("the find command requires a query argument")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	return &cfg, nil
}
