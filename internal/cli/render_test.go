package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/config"
	"github.com/mhagedorn/scenegraph/pkg/pipeline"
	"github.com/mhagedorn/scenegraph/pkg/render"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from input", "", "scenes/kitchen.json", "scenes/kitchen"},
		{"derive from image input", "", "kitchen.jpg", "kitchen"},
		{"strip format extension", "out.svg", "kitchen.json", "out"},
		{"strip png extension", "render.png", "kitchen.json", "render"},
		{"keep unknown extension", "out.data", "kitchen.json", "out.data"},
		{"keep extensionless output", "artifacts/out", "kitchen.json", "artifacts/out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestIsSceneFile(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"kitchen.json", true},
		{"kitchen.scene.JSON", true},
		{"kitchen.jpg", false},
		{"kitchen.png", false},
		{"kitchen", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := isSceneFile(tt.arg); got != tt.want {
				t.Errorf("isSceneFile(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestWriteArtifactsSingleExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "diagram.svg")

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		input:     "kitchen.json",
		output:    out,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v, want [%s]", paths, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("output content = %q, want %q", data, "<svg/>")
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kitchen.json")

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"svg": []byte("<svg/>"),
			"dot": []byte("graph {}"),
		},
		formats: []string{"svg", "dot"},
		input:   input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d files, want 2: %v", len(paths), paths)
	}

	base := filepath.Join(dir, "kitchen")
	for i, want := range []string{base + ".svg", base + ".dot"} {
		if paths[i] != want {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected artifact %s: %v", want, err)
		}
	}
}

func TestWriteArtifactsSkipsMissingFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kitchen.json")

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg", "png"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("wrote %d files, want 1 (png artifact absent): %v", len(paths), paths)
	}
}

// newStyleFlagCmd registers the style flags against opts so tests can
// mark them changed the way cobra would.
func newStyleFlagCmd(opts *renderOpts) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.nodeColor, "node-color", "", "")
	cmd.Flags().StringVar(&opts.edgeColor, "edge-color", "", "")
	cmd.Flags().StringVar(&opts.background, "background", "", "")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "")
	return cmd
}

func TestStyleFromConfigDefaults(t *testing.T) {
	var opts renderOpts
	cmd := newStyleFlagCmd(&opts)

	st := styleFromConfig(cmd, config.Default(), &opts, pipeline.ModeDiagram)
	if st.NodeColor != render.DefaultNodeColor {
		t.Errorf("NodeColor = %q, want default %q", st.NodeColor, render.DefaultNodeColor)
	}
	if st.Background != render.DefaultBackground {
		t.Errorf("Background = %q, want default %q", st.Background, render.DefaultBackground)
	}
}

func TestStyleFromConfigFlagOverride(t *testing.T) {
	var opts renderOpts
	cmd := newStyleFlagCmd(&opts)
	if err := cmd.Flags().Set("node-color", "tomato"); err != nil {
		t.Fatalf("set node-color: %v", err)
	}

	st := styleFromConfig(cmd, config.Default(), &opts, pipeline.ModeDiagram)
	if st.NodeColor != "tomato" {
		t.Errorf("NodeColor = %q, want %q", st.NodeColor, "tomato")
	}
	if st.EdgeColor != render.DefaultEdgeColor {
		t.Errorf("EdgeColor = %q, want default %q", st.EdgeColor, render.DefaultEdgeColor)
	}
}

func TestStyleFromConfigOverlayTransparent(t *testing.T) {
	var opts renderOpts
	cmd := newStyleFlagCmd(&opts)

	st := styleFromConfig(cmd, config.Default(), &opts, pipeline.ModeOverlay)
	if st.Background != "" {
		t.Errorf("overlay Background = %q, want transparent", st.Background)
	}
}

func TestStyleFromConfigOverlayExplicitBackground(t *testing.T) {
	var opts renderOpts
	cmd := newStyleFlagCmd(&opts)
	if err := cmd.Flags().Set("background", "white"); err != nil {
		t.Fatalf("set background: %v", err)
	}

	st := styleFromConfig(cmd, config.Default(), &opts, pipeline.ModeOverlay)
	if st.Background != "white" {
		t.Errorf("overlay Background = %q, want %q (explicit flag kept)", st.Background, "white")
	}
}
