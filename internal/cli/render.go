package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/config"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/pipeline"
	"github.com/mhagedorn/scenegraph/pkg/render"
	"github.com/mhagedorn/scenegraph/pkg/store"
)

// renderOpts holds the command-line flags for the render command that
// do not map directly onto pipeline options.
type renderOpts struct {
	output     string  // output file (single format) or base path (multiple)
	formatsStr string  // comma-separated output formats
	image      string  // backing image for scene-document input (overlay frames)
	noCache    bool    // disable caching
	save       bool    // persist the result to the configured store
	nodeColor  string  // style override
	edgeColor  string  // style override
	background string  // style override
	fontSize   float64 // style override
}

// renderCommand creates the render command for generating scene graph
// visualizations.
//
// Default settings:
//   - mode: diagram (force-directed node-link view)
//   - format: svg
//   - layout: config values, falling back to the engine defaults
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts  renderOpts
		popts pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [image-or-scene.json]",
		Short: "Render a scene graph to SVG, PNG, PDF, JSON, or DOT",
		Long: `Render a scene graph to SVG, PNG, PDF, JSON, or DOT.

The input is either an image (described via the vision model first) or
a scene document produced by 'describe'. The scene is built into a
relation graph, laid out with the force-directed engine, and rendered
in the requested mode:

  diagram   force-directed node-link view on a plain canvas (default)
  overlay   bounding boxes and relation edges sized to the source image

Every stage is cached, so re-rendering with different formats or styles
reuses the described scene, the graph, and the layout.

Examples:
  scenegraph render kitchen.jpg                        # describe + diagram SVG
  scenegraph render kitchen.scene.json -f svg,png      # from a scene document
  scenegraph render kitchen.jpg --mode overlay         # boxes on the photo frame
  scenegraph render scene.json --image kitchen.jpg --mode overlay`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts.Formats = parseFormats(opts.formatsStr)
			if err := validateFormats(popts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateMode(popts.Mode); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts, popts)
		},
	}

	cmd.Flags().StringVar(&popts.Mode, "mode", pipeline.ModeDiagram, "render mode: diagram (default), overlay")
	addRenderFlags(cmd, &opts, &popts)
	return cmd
}

// addRenderFlags registers the flags shared by render and overlay.
func addRenderFlags(cmd *cobra.Command, opts *renderOpts, popts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.image, "image", "", "backing image when the input is a scene document")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.save, "save", false, "persist the result to the configured store")
	cmd.Flags().BoolVar(&popts.Refresh, "refresh", false, "recompute every stage, ignoring cached values")
	cmd.Flags().BoolVar(&popts.Detailed, "detailed", false, "include attributes and confidence in DOT output")

	// Layout flags default to the engine values; the config file fills
	// in anything the user does not set on the command line.
	cmd.Flags().Float64Var(&popts.Width, "width", layout.DefaultWidth, "layout frame width")
	cmd.Flags().Float64Var(&popts.Height, "height", layout.DefaultHeight, "layout frame height")
	cmd.Flags().IntVar(&popts.Iterations, "iterations", layout.DefaultIterations, "force simulation iterations")
	cmd.Flags().Float64Var(&popts.Padding, "padding", layout.DefaultPadding, "layout frame padding")
	cmd.Flags().Float64Var(&popts.K, "k", layout.DefaultK, "force constant scale")
	cmd.Flags().Uint64Var(&popts.Seed, "seed", 0, "layout random seed (0 uses the engine default)")

	// Overlay frame dimensions, for inputs whose pixels are not available.
	cmd.Flags().Float64Var(&popts.ImageWidth, "image-width", 0, "overlay frame width (overrides image probing)")
	cmd.Flags().Float64Var(&popts.ImageHeight, "image-height", 0, "overlay frame height (overrides image probing)")

	// Style overrides on top of the config file.
	cmd.Flags().StringVar(&opts.nodeColor, "node-color", "", "node marker color")
	cmd.Flags().StringVar(&opts.edgeColor, "edge-color", "", "edge line color")
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas background color")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "label font size")
}

// runRender loads the input, executes the full pipeline, and writes the
// requested artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts, popts pipeline.Options) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyLayoutConfig(cmd, &popts, cfg)
	popts.Style = styleFromConfig(cmd, cfg, opts, popts.Mode)
	popts.Logger = c.Logger

	if isSceneFile(input) {
		doc, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read scene %s: %w", input, err)
		}
		popts.SceneDoc = string(doc)
		popts.Image = opts.image
	} else {
		popts.Image = input
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Image input needs the vision model; scene documents do not.
	if popts.SceneDoc == "" {
		gem, err := newDescriber(ctx, cfg)
		if err != nil {
			return err
		}
		defer gem.Close()
		runner.Describer = gem
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", popts.Mode))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   popts.Formats,
		input:     input,
		output:    opts.output,
	})
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.CacheInfo.RenderHit,
		fmt.Sprintf("%d objects", result.Stats.ObjectCount),
		fmt.Sprintf("%d nodes", result.Stats.NodeCount),
		fmt.Sprintf("%d edges", result.Stats.EdgeCount))

	if opts.save {
		id, err := c.saveResult(ctx, cfg, result, popts, input)
		if err != nil {
			printWarning("Result not saved: %v", err)
		} else {
			printDetail("Saved result %s", id)
		}
	}
	return nil
}

// styleFromConfig builds the render style from the config file with
// command-line overrides on top. Overlays keep a transparent canvas
// unless a background was requested explicitly.
func styleFromConfig(cmd *cobra.Command, cfg config.Config, opts *renderOpts, mode string) *render.Style {
	st := render.NewStyle(cfg.StyleOptions()...)
	if cmd.Flags().Changed("node-color") {
		st.NodeColor = opts.nodeColor
	}
	if cmd.Flags().Changed("edge-color") {
		st.EdgeColor = opts.edgeColor
	}
	if cmd.Flags().Changed("font-size") {
		st.FontSize = opts.fontSize
	}
	switch {
	case cmd.Flags().Changed("background"):
		st.Background = opts.background
	case mode == pipeline.ModeOverlay:
		st.Background = ""
	}
	return &st
}

// saveResult persists the pipeline result to the configured store and
// returns the new record id.
func (c *CLI) saveResult(ctx context.Context, cfg config.Config, result *pipeline.Result, popts pipeline.Options, input string) (string, error) {
	st, err := newStore(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer st.Close()

	rec := store.NewResult()
	rec.Image = filepath.Base(input)
	rec.Mode = popts.Mode
	rec.Scene = result.Scene
	model := result.Graph.Export()
	rec.Graph = &model
	rec.Positions = result.Positions
	if len(popts.Formats) > 0 {
		rec.Format = popts.Formats[0]
		rec.Artifact = result.Artifacts[rec.Format]
	}

	if err := st.Save(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// isSceneFile reports whether arg names a scene document rather than an
// image. Scene documents are always JSON.
func isSceneFile(arg string) bool {
	return strings.EqualFold(filepath.Ext(arg), ".json")
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to disk and returns the
// written paths. A single format with an explicit --output goes exactly
// there; otherwise paths derive from the base path plus the format
// extension.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		data := p.artifacts[p.formats[0]]
		if err := os.WriteFile(p.output, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.output, err)
		}
		return []string{p.output}, nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., scene.svg, scene.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
