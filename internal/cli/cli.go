// Package cli implements the scenegraph command-line interface.
//
// This package provides commands for describing images as scene
// documents, rendering scene graphs as diagrams and overlays, querying
// objects by attribute, and running the HTTP API. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - describe: Turn an image into a scene document via the vision model
//   - render: Generate diagram or overlay artifacts from an image or scene
//   - overlay: Shortcut for render --mode overlay
//   - query: Find objects by attribute value
//   - explore: Browse a scene interactively
//   - serve: Run the HTTP API server
//   - cache: Manage the pipeline cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/config"
	"github.com/mhagedorn/scenegraph/pkg/describe"
	"github.com/mhagedorn/scenegraph/pkg/pipeline"
	"github.com/mhagedorn/scenegraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scenegraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location. Set by
	// the root --config flag; empty means ~/.config/scenegraph/config.toml.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and environment overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
// The describer is attached separately by commands that need one.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache selects the cache backend from the config. A file cache
// that cannot be placed degrades to the null cache rather than failing
// the command.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// newDescriber creates the Gemini client from the config. An empty API
// key is rejected with a hint rather than failing on first use.
func newDescriber(ctx context.Context, cfg config.Config) (*describe.Gemini, error) {
	if cfg.Describe.APIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY not set (export it or add api_key to the [describe] config table)")
	}
	return describe.NewGemini(ctx, cfg.GeminiOptions())
}

// newStore selects the result store backend from the config.
func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Store.Backend == "mongo" {
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:        cfg.Store.MongoURI,
			Database:   cfg.Store.MongoDatabase,
			Collection: cfg.Store.MongoCollection,
		})
	}
	return store.NewFileStore(cfg.Store.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/scenegraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// validateFormats checks every requested format before the pipeline runs,
// so a typo fails fast instead of after the describe stage.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if err := pipeline.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// applyLayoutConfig copies layout settings from the config into the
// options for every flag the user did not set explicitly. Flag values
// win over the config file, which wins over built-in defaults.
func applyLayoutConfig(cmd *cobra.Command, opts *pipeline.Options, cfg config.Config) {
	flagDefaults := map[string]func(){
		"width":      func() { opts.Width = cfg.Layout.Width },
		"height":     func() { opts.Height = cfg.Layout.Height },
		"iterations": func() { opts.Iterations = cfg.Layout.Iterations },
		"padding":    func() { opts.Padding = cfg.Layout.Padding },
		"k":          func() { opts.K = cfg.Layout.K },
		"seed":       func() { opts.Seed = cfg.Layout.Seed },
	}
	for name, apply := range flagDefaults {
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
}
