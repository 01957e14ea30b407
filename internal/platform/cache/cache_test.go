// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	cache, err := New(time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	cache.Set("ann", 42)
	cache.Wait()

	value, found := cache.Get("ann")
	require.True(t, found)
	assert.Equal(t, 42, value)

	cache.Delete("ann")
	_, found = cache.Get("ann")
	assert.False(t, found)
}

func TestCache_DisabledAlwaysMisses(t *testing.T) {
	cache, err := New(0)
	require.NoError(t, err)

	assert.False(t, cache.Set("ann", 1))
	_, found := cache.Get("ann")
	assert.False(t, found)

	var nilCache *Cache
	_, found = nilCache.Get("ann")
	assert.False(t, found)
	nilCache.Delete("ann")
	nilCache.Close()
}
