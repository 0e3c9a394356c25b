package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		backendType Type
		want        bool
	}{
		{MemoryBackend, true},
		{SQLiteBackend, true},
		{Type("sheets"), false},
		{Type(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.backendType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.backendType.IsValid())
		})
	}
}

func TestCreateMemoryStore(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateStore(Config{Type: MemoryBackend})
	require.NoError(t, err)
	require.NotNil(t, result.Store)
	assert.Nil(t, result.Cleanup)

	ctx := context.Background()
	require.NoError(t, result.Store.Set(ctx, "k", []byte("v")))
	got, err := result.Store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestCreateSQLiteStore(t *testing.T) {
	factory := NewFactory(nil)
	dbPath := filepath.Join(t.TempDir(), "exptrack.db")

	result, err := factory.CreateStore(Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	require.NoError(t, err)
	require.NotNil(t, result.Store)
	require.NotNil(t, result.Cleanup)
	defer result.Cleanup()

	ctx := context.Background()
	require.NoError(t, result.Store.Set(ctx, "k", []byte("v")))
	got, err := result.Store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestCreateStoreRejectsUnknownType(t *testing.T) {
	factory := NewFactory(nil)

	_, err := factory.CreateStore(Config{Type: Type("sheets")})
	assert.Error(t, err)
}
