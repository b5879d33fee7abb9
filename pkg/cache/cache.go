package cache

import (
	"context"
	"fmt"
	"time"
)

// Stage TTLs. Scenes are the most expensive artifact (a remote model
// call) and keep the longest; rendered artifacts are cheap to rebuild.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 6 * time.Hour
)

// Cache stores pipeline artifacts by key. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SceneKeyOpts are the describe parameters that change a generated
// scene description.
type SceneKeyOpts struct {
	Model       string
	Temperature float64
}

// LayoutKeyOpts are the layout parameters that change computed
// positions.
type LayoutKeyOpts struct {
	Width      float64
	Height     float64
	Iterations int
	Padding    float64
	K          float64
	Seed       uint64
}

// ArtifactKeyOpts are the render parameters that change the final
// output bytes.
type ArtifactKeyOpts struct {
	Mode   string // "diagram" or "overlay"
	Format string // "svg", "json", "png", "pdf", "dot"
	Style  string // resolved style fingerprint
}

// Keyer generates cache keys for each pipeline stage. Keys derive from
// content hashes plus the options that affect the stage's output.
type Keyer interface {
	// HTTPKey keys a raw remote response by namespace and request key.
	HTTPKey(namespace, key string) string

	// SceneKey keys a described scene by source-image hash and
	// generation options.
	SceneKey(imageHash string, opts SceneKeyOpts) string

	// GraphKey keys a built graph by its scene document hash.
	GraphKey(sceneHash string) string

	// LayoutKey keys computed positions by graph hash and layout
	// options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered output by layout hash and render
	// options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// SceneKey generates a key for described scenes.
func (k *DefaultKeyer) SceneKey(imageHash string, opts SceneKeyOpts) string {
	return hashKey("scene", imageHash, opts)
}

// GraphKey generates a key for built graphs.
func (k *DefaultKeyer) GraphKey(sceneHash string) string {
	return hashKey("graph", sceneHash)
}

// LayoutKey generates a key for computed layouts.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
