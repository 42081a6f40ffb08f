package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahalah/travel-gateway/pkg/logger"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(time.Hour, logger.NewNop())

	s := r.Create()
	require.NotEmpty(t, s.ID())

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry(time.Hour, logger.NewNop())

	s := r.Create()
	r.Delete(s.ID())

	_, err := r.Get(s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistrySweepEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(10*time.Millisecond, logger.NewNop())

	idle := r.Create()
	time.Sleep(20 * time.Millisecond)
	fresh := r.Create()

	assert.Equal(t, 1, r.Sweep())

	_, err := r.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(fresh.ID())
	assert.NoError(t, err)
}
