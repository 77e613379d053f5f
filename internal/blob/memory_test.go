package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/claimload/pkg/claimload"
)

func TestMemoryStore_GetReturnsStoredBytes(t *testing.T) {
	store := NewMemoryStore()
	store.Put("landing", "providers.csv", []byte("Name,Region,Specialty\n"))

	data, err := store.Get(context.Background(), "landing", "providers.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("Name,Region,Specialty\n"), data)
}

func TestMemoryStore_GetMissingObject(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "landing", "missing.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, claimload.ErrObjectNotFound))
	assert.Contains(t, err.Error(), "landing/missing.csv")
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Put("landing", "claims.csv", []byte("abc"))

	data, err := store.Get(context.Background(), "landing", "claims.csv")
	require.NoError(t, err)
	data[0] = 'z'

	again, err := store.Get(context.Background(), "landing", "claims.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again, "mutating a returned slice must not affect the store")
}
