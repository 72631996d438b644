package cache

// ScopedKeyer wraps a Keyer with a prefix so that several producers can share
// one backend. The CLI scopes keys by build version, since extraction output
// may change between releases.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "amas:v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ImportsKey generates a prefixed extraction key.
func (k *ScopedKeyer) ImportsKey(contentHash, sourceType string) string {
	return k.prefix + k.inner.ImportsKey(contentHash, sourceType)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
