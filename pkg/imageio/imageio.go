// Package imageio resolves the source images overlay rendering aligns
// to.
//
// The overlay renderer performs no I/O: callers resolve the backing
// image through an [Accessor] and pass its pixel dimensions to the
// renderer. A missing image surfaces here as [ErrNotFound] and never
// invalidates an already-computed graph or layout.
package imageio

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrNotFound indicates the accessor cannot locate the requested image.
var ErrNotFound = errors.New("image not found")

// Info describes a resolved image.
type Info struct {
	Path   string
	Width  int
	Height int
}

// Accessor resolves scene image names to backing images.
// Implementations must be safe for concurrent use.
type Accessor interface {
	Resolve(ctx context.Context, name string) (Info, error)
}

// Dir resolves image names against a directory on disk, reading pixel
// dimensions from the file header. Names are reduced to their basename
// so a scene document cannot reach outside the directory.
type Dir struct {
	root string
}

// NewDir returns an accessor rooted at dir.
func NewDir(dir string) *Dir { return &Dir{root: dir} }

// Resolve opens the named image under the accessor's root and decodes
// its dimensions. A missing file reports ErrNotFound.
func (d *Dir) Resolve(ctx context.Context, name string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	path := filepath.Join(d.root, filepath.Base(name))
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Info{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return Info{Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}

// Static maps image names to fixed info, for callers that already know
// their image dimensions and for tests.
type Static map[string]Info

// Resolve looks the name up in the map. Missing names report ErrNotFound.
func (s Static) Resolve(_ context.Context, name string) (Info, error) {
	info, ok := s[name]
	if !ok {
		return Info{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return info, nil
}
