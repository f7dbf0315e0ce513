package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	ok, err := s.IsDismissed(ctx, "admin", "bkap-tracker")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Dismiss(ctx, "admin", "bkap-tracker"))
	require.NoError(t, s.Dismiss(ctx, "admin", "bkap-tracker"))
	require.NoError(t, s.Dismiss(ctx, "admin", "bkap-meeting-notice"))

	ok, err = s.IsDismissed(ctx, "admin", "bkap-tracker")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsDismissed(ctx, "shop-manager", "bkap-tracker")
	require.NoError(t, err)
	assert.False(t, ok, "dismissals are per actor")

	keys, err := s.ListDismissed(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, []string{"bkap-meeting-notice", "bkap-tracker"}, keys)

	keys, err = s.ListDismissed(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
