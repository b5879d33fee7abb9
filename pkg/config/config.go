// Package config loads application configuration from a TOML file with
// environment overrides.
//
// Precedence, lowest to highest: built-in defaults, the config file
// (~/.config/scenegraph/config.toml), environment variables, then
// command-line flags (applied by the CLI, not here). A missing config
// file is not an error; the defaults apply. A .env file in the working
// directory is loaded before environment lookups so API keys never need
// to live in the shell profile or the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/mhagedorn/scenegraph/pkg/describe"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/render"
)

const appName = "scenegraph"

// Config is the full application configuration.
type Config struct {
	Layout   Layout   `toml:"layout"`
	Render   Render   `toml:"render"`
	Describe Describe `toml:"describe"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Server   Server   `toml:"server"`
}

// Layout configures the force-directed layout engine.
type Layout struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Iterations int     `toml:"iterations"`
	Padding    float64 `toml:"padding"`
	K          float64 `toml:"k"`
	Seed       uint64  `toml:"seed"`
}

// Render configures diagram and overlay styling.
type Render struct {
	EdgeColor  string  `toml:"edge_color"`
	EdgeWidth  float64 `toml:"edge_width"`
	NodeColor  string  `toml:"node_color"`
	NodeSize   float64 `toml:"node_size"`
	Background string  `toml:"background"`
	FontFamily string  `toml:"font_family"`
	FontSize   float64 `toml:"font_size"`
}

// Describe configures the vision model. The api_key file key exists for
// completeness but GOOGLE_API_KEY in the environment always wins, and
// Save never writes the key back to disk.
type Describe struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	TopP        float32 `toml:"top_p"`
	TopK        int32   `toml:"top_k"`
	MaxTokens   int32   `toml:"max_tokens"`
}

// Cache selects and configures the pipeline cache backend.
type Cache struct {
	Backend       string `toml:"backend"` // file, redis, or none
	Dir           string `toml:"dir"`     // file backend; empty means the XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Store selects and configures result persistence.
type Store struct {
	Backend         string `toml:"backend"` // file or mongo
	Dir             string `toml:"dir"`     // file backend; empty means data/results
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string `toml:"addr"`
	RequestTimeout int    `toml:"request_timeout"` // seconds
}

// Default returns the built-in configuration: the layout, style, and
// model defaults the library packages declare, a file cache, and a
// file store.
func Default() Config {
	return Config{
		Layout: Layout{
			Width:      layout.DefaultWidth,
			Height:     layout.DefaultHeight,
			Iterations: layout.DefaultIterations,
			Padding:    layout.DefaultPadding,
			K:          layout.DefaultK,
		},
		Render: Render{
			EdgeColor:  render.DefaultEdgeColor,
			EdgeWidth:  render.DefaultEdgeWidth,
			NodeColor:  render.DefaultNodeColor,
			NodeSize:   render.DefaultNodeSize,
			Background: render.DefaultBackground,
			FontFamily: render.DefaultFontFamily,
			FontSize:   render.DefaultFontSize,
		},
		Describe: Describe{
			Model:       describe.DefaultModel,
			Temperature: describe.DefaultTemperature,
			TopP:        describe.DefaultTopP,
			TopK:        describe.DefaultTopK,
			MaxTokens:   describe.DefaultMaxTokens,
		},
		Cache:  Cache{Backend: "file"},
		Store:  Store{Backend: "file"},
		Server: Server{Addr: ":8080", RequestTimeout: 120},
	}
}

// Path returns the default config file location, honoring
// XDG_CONFIG_HOME and falling back to ~/.config/scenegraph/config.toml.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file and applies environment overrides on top
// of it. An empty path means the default location; a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// no file: defaults plus environment
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories. The API
// key is dropped first; secrets stay in the environment.
func Save(cfg Config, path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	cfg.Describe.APIKey = ""

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// applyEnv loads .env from the working directory and overlays the
// environment variables the tool honors.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Describe.APIKey = v
	}
	if v := os.Getenv("SCENEGRAPH_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("SCENEGRAPH_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// LayoutOptions converts the layout section to engine options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Width:      c.Layout.Width,
		Height:     c.Layout.Height,
		Iterations: c.Layout.Iterations,
		Padding:    c.Layout.Padding,
		K:          c.Layout.K,
		Seed:       c.Layout.Seed,
	}
}

// StyleOptions converts the render section to style options.
func (c Config) StyleOptions() []render.Option {
	return []render.Option{
		render.WithEdgeColor(c.Render.EdgeColor),
		render.WithEdgeWidth(c.Render.EdgeWidth),
		render.WithNodeColor(c.Render.NodeColor),
		render.WithNodeSize(c.Render.NodeSize),
		render.WithBackground(c.Render.Background),
		render.WithFontFamily(c.Render.FontFamily),
		render.WithFontSize(c.Render.FontSize),
	}
}

// GeminiOptions converts the describe section to client options.
func (c Config) GeminiOptions() describe.GeminiOptions {
	return describe.GeminiOptions{
		APIKey:      c.Describe.APIKey,
		Model:       c.Describe.Model,
		Temperature: c.Describe.Temperature,
		TopP:        c.Describe.TopP,
		TopK:        c.Describe.TopK,
		MaxTokens:   c.Describe.MaxTokens,
	}
}
