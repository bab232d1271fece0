package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagos/internal/core"
)

func TestJSONFileLoadMissingUser(t *testing.T) {
	s := NewJSONFile(t.TempDir())

	payments, err := s.Load(context.Background(), "user_123")

	assert.Nil(t, err)
	assert.Empty(t, payments)
}

func TestJSONFileRoundTrip(t *testing.T) {
	s := NewJSONFile(t.TempDir())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	in := []core.Payment{
		{ID: "TRX-2", Amount: 40, Currency: core.Currency, Status: core.StatusPending,
			Method: core.MethodNequi, Type: core.TypeExpense, Description: "bus",
			Category: core.CategoryTransport, CreatedAt: now, UpdatedAt: now},
		{ID: "TRX-1", Amount: 100, Currency: core.Currency, Status: core.StatusCompleted,
			Method: core.MethodTransfer, Type: core.TypeIncome, Description: "salario",
			Category: core.CategoryOther, CreatedAt: now, UpdatedAt: now, CompletedAt: &now},
	}
	require.NoError(t, s.Save(ctx, "user_123", in))

	out, err := s.Load(ctx, "user_123")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "TRX-2", out[0].ID)
	assert.Equal(t, "TRX-1", out[1].ID)
	assert.Equal(t, in[1].Amount, out[1].Amount)
	require.NotNil(t, out[1].CompletedAt)
	assert.True(t, out[1].CompletedAt.Equal(now))
	assert.Nil(t, out[0].CompletedAt)
}

func TestJSONFileCreatesDirLazily(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data", "users")
	s := NewJSONFile(base)

	require.NoError(t, s.Save(context.Background(), "u1", nil))

	_, err := os.Stat(filepath.Join(base, "u1.json"))
	assert.NoError(t, err)
}

func TestJSONFilePrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONFile(dir)

	require.NoError(t, s.Save(context.Background(), "u1", []core.Payment{{ID: "TRX-1", Description: "x"}}))

	data, err := os.ReadFile(filepath.Join(dir, "u1.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  "), "expected indented JSON, got %s", data)
}

func TestJSONFileIsolatesUsers(t *testing.T) {
	s := NewJSONFile(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "alice", []core.Payment{{ID: "TRX-a", Description: "x"}}))
	require.NoError(t, s.Save(ctx, "bob", []core.Payment{{ID: "TRX-b", Description: "y"}}))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TRX-a", got[0].ID)
}

func TestJSONFileLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u1.json"), []byte("{not json"), 0644))

	_, err := NewJSONFile(dir).Load(context.Background(), "u1")
	assert.Error(t, err)
}
