package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/pipeline"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// describeOpts holds the command-line flags for the describe command.
type describeOpts struct {
	output      string  // output file path (stdout if empty)
	model       string  // vision model override
	temperature float32 // sampling temperature override
	noCache     bool    // disable caching
	refresh     bool    // bypass cached scene, still write back
}

// describeCommand creates the describe command for turning images into
// scene documents.
func (c *CLI) describeCommand() *cobra.Command {
	var opts describeOpts

	cmd := &cobra.Command{
		Use:   "describe [image]",
		Short: "Describe an image as a scene document",
		Long: `Describe an image as a scene document.

The describe command sends the image to the configured vision model and
writes the resulting scene JSON to stdout (or --output). The document
lists every salient object with its bounding box, attributes, spatial
relations, and semantic context.

Results are cached by image content, so repeated runs are free until
--refresh forces a new model call.

Requires GOOGLE_API_KEY (or api_key in the [describe] config table).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDescribe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "vision model (default from config)")
	cmd.Flags().Float32Var(&opts.temperature, "temperature", 0, "sampling temperature (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cached scene")

	return cmd
}

// runDescribe loads the config, calls the vision model, and writes the
// scene document.
func (c *CLI) runDescribe(ctx context.Context, image string, opts describeOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	gem, err := newDescriber(ctx, cfg)
	if err != nil {
		return err
	}
	defer gem.Close()

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Describer = gem

	popts := pipeline.Options{
		Image:       image,
		Model:       opts.model,
		Temperature: opts.temperature,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}
	if popts.Model == "" {
		popts.Model = cfg.Describe.Model
	}
	if popts.Temperature == 0 {
		popts.Temperature = cfg.Describe.Temperature
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Describing %s...", filepath.Base(image)))
	spinner.Start()

	sc, cached, err := runner.DescribeWithCacheInfo(ctx, popts)
	if err != nil {
		spinner.StopWithError("Describe failed")
		return fmt.Errorf("describe %s: %w", image, err)
	}
	spinner.Stop()

	data, err := scene.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}

	// Keep stdout clean when the document itself goes there.
	if opts.output != "" {
		printSuccess("Scene described")
		printFile(opts.output)
		printStats(cached, fmt.Sprintf("%d objects", len(sc.Objects)))
		printNewline()
		printNextStep("Render", "scenegraph render "+opts.output)
	}
	return nil
}
