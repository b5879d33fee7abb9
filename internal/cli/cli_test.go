package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/config"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("cacheDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"svg", "png", "pdf", "json", "dot"}, false},
		{"invalid format", []string{"bmp"}, true},
		{"mixed valid invalid", []string{"svg", "bmp"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("SetLogLevel: level = %v, want %v", c.Logger.GetLevel(), LogDebug)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"describe", "render", "overlay", "query", "explore", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestApplyLayoutConfig(t *testing.T) {
	var popts pipeline.Options
	cmd := &cobra.Command{}
	cmd.Flags().Float64Var(&popts.Width, "width", layout.DefaultWidth, "")
	cmd.Flags().Float64Var(&popts.Height, "height", layout.DefaultHeight, "")
	cmd.Flags().IntVar(&popts.Iterations, "iterations", layout.DefaultIterations, "")
	cmd.Flags().Float64Var(&popts.Padding, "padding", layout.DefaultPadding, "")
	cmd.Flags().Float64Var(&popts.K, "k", layout.DefaultK, "")
	cmd.Flags().Uint64Var(&popts.Seed, "seed", 0, "")

	if err := cmd.Flags().Set("width", "640"); err != nil {
		t.Fatalf("set width: %v", err)
	}

	cfg := config.Default()
	cfg.Layout.Width = 500
	cfg.Layout.Height = 420
	cfg.Layout.Seed = 7

	applyLayoutConfig(cmd, &popts, cfg)

	if popts.Width != 640 {
		t.Errorf("Width = %v, want 640 (explicit flag wins over config)", popts.Width)
	}
	if popts.Height != 420 {
		t.Errorf("Height = %v, want 420 (config wins over default)", popts.Height)
	}
	if popts.Seed != 7 {
		t.Errorf("Seed = %v, want 7", popts.Seed)
	}
	if popts.Iterations != layout.DefaultIterations {
		t.Errorf("Iterations = %v, want default %v", popts.Iterations, layout.DefaultIterations)
	}
}
