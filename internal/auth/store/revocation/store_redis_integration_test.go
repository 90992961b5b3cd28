//go:build integration

package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Traasa/SistemDekor-sub004/pkg/testutil/containers"
)

func TestRedisTRL_RevokeAndCheck(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	trl := NewRedisTRL(rc.Client)

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))

	revoked, err = trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay unaffected.
	revoked, err = trl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTRL_EntryExpires(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	trl := NewRedisTRL(rc.Client)

	require.NoError(t, trl.RevokeToken(ctx, "jti-short", 500*time.Millisecond))

	revoked, err := trl.IsRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.True(t, revoked)

	time.Sleep(time.Second)

	revoked, err = trl.IsRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTRL_EmptyJTI(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	trl := NewRedisTRL(rc.Client)

	require.NoError(t, trl.RevokeToken(ctx, "", time.Minute))

	revoked, err := trl.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}
