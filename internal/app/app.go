package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/provreg/internal/ctxlog"
	"github.com/vk/provreg/internal/manifest"
	"github.com/vk/provreg/internal/registry"
)

// App encapsulates the tool's dependencies: an isolated logger and a
// registry seeded from the configured manifests. The command output goes to
// outW; logs go to the writer the logger was built with.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp builds a fully initialized App: it configures the logger, loads
// every provider manifest under cfg.ManifestPath, and seeds a fresh
// registry with the declared records.
func NewApp(outW, logW io.Writer, cfg *Config, loader *manifest.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	records, err := loader.Load(ctx, cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	}

	reg := registry.New(nil)
	manifest.Seed(reg, records)
	logger.Debug("Registry seeded from manifests.", "providers", len(records))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}, nil
}

// Run executes the configured command against the seeded registry.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	switch cfg.Command {
	case CommandDump:
		a.registry.DumpTo(a.outW, cfg.Detailed)
		return nil
	case CommandFind:
		if !a.registry.DumpMatches(ctx, a.outW, cfg.Query, cfg.Detailed, cfg.Timeout) {
			fmt.Fprintf(a.outW, "No providers match %q\n", cfg.Query)
		}
		return nil
	default:
		// NewConfig rejects anything else.
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
