package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	_, err := s.Get(ctx, "agents")
	assert.ErrorIs(t, err, repo.ErrKeyNotFound)

	value := []byte(`[]`)
	require.NoError(t, s.Set(ctx, "agents", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "agents")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.Equal(t, 1, s.Writes())

	boom := errors.New("quota exceeded")
	s.FailWrites(boom)
	assert.ErrorIs(t, s.Set(ctx, "agents", []byte(`[1]`)), boom)
	s.FailWrites(nil)

	s.FailReads(boom)
	_, err = s.Get(ctx, "agents")
	assert.ErrorIs(t, err, boom)
}
