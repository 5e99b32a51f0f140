package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Swap(t *testing.T) {
	first := newTestEngine(t)
	second := newTestEngine(t)

	s := NewStore(first)
	assert.Same(t, first, s.Engine())
	assert.Same(t, first, s.Swap(second))
	assert.Same(t, second, s.Engine())
}

func TestReloader_Reload(t *testing.T) {
	first := newTestEngine(t)
	store := NewStore(first)

	next := newTestEngine(t)
	r, err := NewReloader(store, "@every 1h", func() (*Engine, error) { return next, nil })
	require.NoError(t, err)

	require.NoError(t, r.Reload())
	assert.Same(t, next, store.Engine())
}

func TestReloader_FailureKeepsEngine(t *testing.T) {
	first := newTestEngine(t)
	store := NewStore(first)
	boom := errors.New("disk on fire")

	r, err := NewReloader(store, "0 3 * * *", func() (*Engine, error) { return nil, boom })
	require.NoError(t, err)

	assert.ErrorIs(t, r.Reload(), boom)
	assert.Same(t, first, store.Engine())
}

func TestReloader_InvalidSchedule(t *testing.T) {
	_, err := NewReloader(NewStore(nil), "every tuesday", func() (*Engine, error) { return nil, nil })
	assert.Error(t, err)
}

func TestReloader_StartStop(t *testing.T) {
	r, err := NewReloader(NewStore(newTestEngine(t)), "@every 1h", func() (*Engine, error) {
		return nil, errors.New("not called")
	})
	require.NoError(t, err)
	r.Start()
	r.Stop()
}
