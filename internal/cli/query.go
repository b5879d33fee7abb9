package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// queryCommand creates the query command for attribute lookups.
func (c *CLI) queryCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "query [scene.json] [key=value]",
		Short: "Find objects by attribute value",
		Long: `Find objects by attribute value.

The query command builds the relation graph from a scene document and
returns every object whose attribute matches exactly. The object name
is addressable under the "name" key; numbers compare across integer and
float forms.

Examples:
  scenegraph query kitchen.scene.json color=red
  scenegraph query kitchen.scene.json name=cup
  scenegraph query kitchen.scene.json mass=0.3 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), args[0], args[1], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "machine-readable output")
	return cmd
}

// queryMatch is one matching object in machine-readable output.
type queryMatch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// queryResult is the machine-readable output of a query.
type queryResult struct {
	Key     string       `json:"key"`
	Value   any          `json:"value"`
	Matches []queryMatch `json:"matches"`
}

// runQuery parses the scene, builds the graph, and prints the objects
// matching the attribute expression.
func runQuery(ctx context.Context, input, expr string, jsonOut bool) error {
	logger := loggerFromContext(ctx)

	key, value, err := parseAttrQuery(expr)
	if err != nil {
		return err
	}

	doc, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read scene %s: %w", input, err)
	}
	sc, err := scene.Parse(doc)
	if err != nil {
		return fmt.Errorf("parse scene %s: %w", input, err)
	}
	g, err := graph.Build(sc)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	logger.Debugf("Built graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	ids := g.FindByAttribute(key, value)

	if jsonOut {
		matches := make([]queryMatch, 0, len(ids))
		for _, id := range ids {
			n, _ := g.Node(id)
			matches = append(matches, queryMatch{ID: id, Name: n.Name})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(queryResult{Key: key, Value: value, Matches: matches})
	}

	if len(ids) == 0 {
		printInfo("No objects match %s", expr)
		return nil
	}
	printSuccess("%d of %d objects match %s", len(ids), g.NodeCount(), expr)
	for _, id := range ids {
		n, _ := g.Node(id)
		printKeyValue(fmt.Sprintf("#%d", id), fmt.Sprintf("%s (%d relations)", n.Name, g.Degree(id)))
	}
	return nil
}

// parseAttrQuery splits a key=value expression, decoding the value as a
// number or boolean when it reads as one. Numbers are tried before
// booleans so "1" queries the numeric value, not true.
func parseAttrQuery(expr string) (string, any, error) {
	key, raw, ok := strings.Cut(expr, "=")
	if !ok || key == "" || raw == "" {
		return "", nil, fmt.Errorf("invalid query %q (expected key=value)", expr)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return key, n, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return key, b, nil
	}
	return key, raw, nil
}
