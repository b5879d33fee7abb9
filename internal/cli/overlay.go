package cli

import (
	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/pipeline"
)

// overlayCommand creates the overlay command, a render shortcut that
// draws the scene graph on the source image frame.
func (c *CLI) overlayCommand() *cobra.Command {
	var (
		opts  renderOpts
		popts pipeline.Options
	)
	popts.Mode = pipeline.ModeOverlay

	cmd := &cobra.Command{
		Use:   "overlay [image]",
		Short: "Draw the scene graph over the source image frame",
		Long: `Draw the scene graph over the source image frame.

The overlay command renders bounding boxes, center markers, and relation
edges in the image's pixel coordinate space. The canvas is transparent
so the artifact can be composited onto the photo.

The frame is probed from the image file; pass --image-width and
--image-height when the pixels are not available. Use --scene to skip
the vision model and reuse an existing scene document.

Examples:
  scenegraph overlay kitchen.jpg
  scenegraph overlay kitchen.jpg --scene kitchen.scene.json -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts.Formats = parseFormats(opts.formatsStr)
			if err := validateFormats(popts.Formats); err != nil {
				return err
			}
			input := args[0]
			if scenePath, _ := cmd.Flags().GetString("scene"); scenePath != "" {
				// Scene document carries the content; the image argument
				// still provides the overlay frame.
				opts.image = input
				input = scenePath
			}
			return c.runRender(cmd, input, &opts, popts)
		},
	}

	cmd.Flags().String("scene", "", "scene document to render instead of describing the image")
	addRenderFlags(cmd, &opts, &popts)
	return cmd
}
