package binary_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralphmorton/wisp/binary"
	"github.com/ralphmorton/wisp/wasm"
)

func TestCacheReturnsPointerIdenticalModule(t *testing.T) {
	cache, err := binary.NewCache(0)
	require.NoError(t, err)

	b := buildAddModule(t)
	m1, err := cache.Decode(b)
	require.NoError(t, err)
	m2, err := cache.Decode(b)
	require.NoError(t, err)
	require.Same(t, m1, m2)
}

func TestCacheDedupesConcurrentDecodes(t *testing.T) {
	cache, err := binary.NewCache(0)
	require.NoError(t, err)

	b := buildAddModule(t)
	const n = 16

	var wg sync.WaitGroup
	modules := make([]*wasm.Module, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := cache.Decode(b)
			require.NoError(t, err)
			modules[i] = m
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, modules[0], modules[i])
	}
}

func TestCachePropagatesDecodeError(t *testing.T) {
	cache, err := binary.NewCache(0)
	require.NoError(t, err)

	_, err = cache.Decode([]byte{0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}
