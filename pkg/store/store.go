// Package store persists completed pipeline runs.
//
// A [Result] bundles everything one run produced: the scene description,
// the derived graph model, the computed layout, and the rendered artifact.
// Results are written through the [Store] interface; [FileStore] keeps
// timestamped JSON files in a directory and [MongoStore] keeps documents
// in a MongoDB collection. The CLI and the HTTP API both read results
// back by id, so identifiers are uuids rather than paths.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// ErrNotFound is returned by [Store.Get] and [Store.Delete] when no
// result carries the requested id.
var ErrNotFound = errors.New("result not found")

// Result is one completed pipeline run. Stage fields are pointers so a
// partial run (describe only, no render) stores cleanly without zero
// values masquerading as output.
type Result struct {
	ID        string             `json:"id" bson:"_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Mode      string             `json:"mode,omitempty" bson:"mode,omitempty"`
	Format    string             `json:"format,omitempty" bson:"format,omitempty"`
	Scene     *scene.Scene       `json:"scene,omitempty" bson:"scene,omitempty"`
	Graph     *graph.Model       `json:"graph,omitempty" bson:"graph,omitempty"`
	Positions layout.PositionMap `json:"positions,omitempty" bson:"positions,omitempty"`
	Artifact  []byte             `json:"artifact,omitempty" bson:"artifact,omitempty"`
}

// NewResult returns an empty result with a fresh id and creation time.
func NewResult() Result {
	return Result{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists pipeline results. Implementations are safe for
// concurrent use.
type Store interface {
	// Save writes a result. Saving an id that already exists replaces
	// the stored result.
	Save(ctx context.Context, r Result) error

	// Get returns the result with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Result, error)

	// List returns stored results, newest first. A limit <= 0 returns
	// everything.
	List(ctx context.Context, limit int) ([]Result, error)

	// Delete removes the result with the given id, or returns
	// ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
