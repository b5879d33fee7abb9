package cli

import (
	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "scenegraph",
		Short:        "Scenegraph turns images into scene-description graphs",
		Long:         `Scenegraph describes images with a vision model, builds a relation graph from the scene document, and renders it as force-directed diagrams or image overlays.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/scenegraph/config.toml)")

	// Register all subcommands
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.overlayCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
