package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagos/internal/core"
)

func TestMemoryContract(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	payments, err := s.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, payments)

	in := []core.Payment{{ID: "TRX-1", Description: "x"}, {ID: "TRX-2", Description: "y"}}
	require.NoError(t, s.Save(ctx, "u1", in))

	out, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "TRX-1", out[0].ID)

	// Mutating the returned slice must not leak into the store.
	out[0].ID = "TRX-EDITED"
	again, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "TRX-1", again[0].ID)
}
