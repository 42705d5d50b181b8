package classifier

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/patrickmn/go-cache"

	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// Cached remembers the emotion of images it has already classified.
// Errors are not cached.
type Cached struct {
	inner ports.Classifier
	cache *cache.Cache
}

// NewCached wraps inner with a cache whose entries expire after ttl.
// A ttl of zero or less keeps entries until the process exits.
func NewCached(inner ports.Classifier, ttl time.Duration) *Cached {
	if ttl <= 0 {
		return &Cached{inner: inner, cache: cache.New(cache.NoExpiration, 0)}
	}
	return &Cached{inner: inner, cache: cache.New(ttl, 2*ttl)}
}

// Classify returns the cached emotion for img or asks the inner classifier.
func (c *Cached) Classify(img *domain.Array) (domain.Emotion, error) {
	key := Fingerprint(img)
	if v, ok := c.cache.Get(key); ok {
		return v.(domain.Emotion), nil
	}

	e, err := c.inner.Classify(img)
	if err != nil {
		return 0, err
	}
	c.cache.SetDefault(key, e)
	return e, nil
}

// Len returns the number of cached entries, including expired ones not yet evicted.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

// Fingerprint hashes the shape and values of an array.
func Fingerprint(img *domain.Array) string {
	d := xxhash.New()
	var buf [8]byte
	for _, dim := range img.Shape() {
		binary.LittleEndian.PutUint64(buf[:], uint64(dim))
		_, _ = d.Write(buf[:])
	}
	// separates the shape from the values
	_, _ = d.Write([]byte{0xff})
	for _, v := range img.Data() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
