// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_ConnectsAndPings(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+server.Addr(), slog.Default())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://nope", slog.Default())
	assert.Error(t, err)
}
