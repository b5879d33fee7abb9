package cache

// ScopedKeyer wraps a Keyer with a prefix so separate users or
// deployments sharing one Redis instance cannot collide.
//
// Example usage:
//
//	// Per-user keys for private scenes
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Unscoped keys for shared artifacts
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every
// generated key. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// SceneKey generates a prefixed key for described scenes.
func (k *ScopedKeyer) SceneKey(imageHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(imageHash, opts)
}

// GraphKey generates a prefixed key for built graphs.
func (k *ScopedKeyer) GraphKey(sceneHash string) string {
	return k.prefix + k.inner.GraphKey(sceneHash)
}

// LayoutKey generates a prefixed key for computed layouts.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
