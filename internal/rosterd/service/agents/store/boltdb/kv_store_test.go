package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "roster.db")

	db, err := Open(path)
	require.NoError(t, err)
	kv := NewKVStore(db)

	_, err = kv.Get(ctx, "agents")
	assert.ErrorIs(t, err, repo.ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "agents", []byte(`[{"id":1}]`)))
	require.NoError(t, kv.Set(ctx, "agents", []byte(`[]`)))
	got, err := kv.Get(ctx, "agents")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
	require.NoError(t, kv.Close())

	db, err = Open(path)
	require.NoError(t, err)
	kv = NewKVStore(db)
	defer kv.Close()

	got, err = kv.Get(ctx, "agents")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got, "values survive reopening")
}
