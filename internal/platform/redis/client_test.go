// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	folioredis "github.com/taibuivan/folio/internal/platform/redis"
)

/*
TestNewClient connects to an in-memory server and fails on a bad URL.
*/
func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := folioredis.NewClient(context.Background(), "redis://"+server.Addr()+"/0", logger)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, folioredis.Ping(context.Background(), client))

	_, err = folioredis.NewClient(context.Background(), "not-a-url", logger)
	assert.Error(t, err)
}

/*
TestPing_Down reports a stopped server.
*/
func TestPing_Down(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := folioredis.NewClient(context.Background(), "redis://"+server.Addr(), logger)
	require.NoError(t, err)
	defer client.Close()

	server.Close()
	assert.Error(t, folioredis.Ping(context.Background(), client))
}
