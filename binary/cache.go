package binary

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ralphmorton/wisp/wasm"
)

// Cache memoizes DecodeModule by the SHA-256 of the input bytes. Decoding
// is pure and read-only, so the same bytes always decode to an equivalent
// Module; this avoids re-parsing the same binary across repeated
// Runtime instantiations (for example, a server that spins up a fresh
// Runtime per request against a handful of known modules).
//
// Cache is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[[sha256.Size]byte, *wasm.Module]
	group   singleflight.Group
}

// NewCache creates a Cache holding up to size decoded modules. A size of
// zero or less defaults to 128.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = 128
	}
	entries, err := lru.New[[sha256.Size]byte, *wasm.Module](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Decode decodes b, reusing a prior decode of identical bytes if one is
// cached. Concurrent calls for the same bytes decode exactly once.
func (c *Cache) Decode(b []byte) (*wasm.Module, error) {
	key := sha256.Sum256(b)
	if m, ok := c.entries.Get(key); ok {
		return m, nil
	}

	keyStr := string(key[:])
	v, err, _ := c.group.Do(keyStr, func() (interface{}, error) {
		if m, ok := c.entries.Get(key); ok {
			return m, nil
		}
		m, err := DecodeModule(b)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*wasm.Module), nil
}
