package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// exploreCommand creates the explore command for interactive browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [scene.json]",
		Short: "Browse a scene's objects and relations interactively",
		Long: `Browse a scene's objects and relations interactively.

The explorer lists every object with its key attributes. Press / to
filter by attribute (e.g. color=red or name=cup), enter to inspect an
object's bounding box, attributes, relations, and semantics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read scene %s: %w", args[0], err)
			}
			sc, err := scene.Parse(doc)
			if err != nil {
				return fmt.Errorf("parse scene %s: %w", args[0], err)
			}
			g, err := graph.Build(sc)
			if err != nil {
				return fmt.Errorf("build graph: %w", err)
			}

			model := NewExploreModel(sc, g)
			prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			return nil
		},
	}
}
