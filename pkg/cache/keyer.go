package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// FrameKeyOpts is everything that changes a rendered frame.
type FrameKeyOpts struct {
	StoryHash string  `json:"story"`
	DataHash  string  `json:"data"`
	Step      int     `json:"step"`
	Format    string  `json:"format"`
	Size      float64 `json:"size"`
	At        int64   `json:"at,omitempty"` // sweep time in ms, 0 when settled
}

// Keyer derives cache keys.
type Keyer interface {
	FrameKey(opts FrameKeyOpts) string
	StoryboardKey(storyHash string, detailed bool) string
}

// DefaultKeyer produces "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) FrameKey(opts FrameKeyOpts) string {
	return hashKey("frame", opts)
}

func (DefaultKeyer) StoryboardKey(storyHash string, detailed bool) string {
	return hashKey("storyboard", storyHash, detailed)
}

// ScopedKeyer prefixes every key of an inner keyer, e.g. to separate
// deployments sharing one Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) FrameKey(opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(opts)
}

func (k *ScopedKeyer) StoryboardKey(storyHash string, detailed bool) string {
	return k.prefix + k.inner.StoryboardKey(storyHash, detailed)
}

func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
