package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerCache_Disabled(t *testing.T) {
	c := NewAnswerCache(0)
	assert.Nil(t, c)

	c.Set("e1", "q", &Answer{Text: "x"})
	_, ok := c.Get("e1", "q")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
	c.Clear()
	c.Close()
}

func TestAnswerCache_GetSet(t *testing.T) {
	c := NewAnswerCache(time.Hour)
	defer c.Close()

	want := &Answer{Text: "Sales — $1.00."}
	c.Set("e1", "Total Sales", want)

	got, ok := c.Get("e1", "total sales")
	require.True(t, ok)
	assert.Same(t, want, got)

	_, ok = c.Get("e2", "total sales")
	assert.False(t, ok, "answers are scoped to the engine that produced them")

	_, ok = c.Get("e1", "total profit")
	assert.False(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestAnswerCache_Expiry(t *testing.T) {
	c := NewAnswerCache(time.Minute)
	defer c.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("e1", "q", &Answer{})
	now = now.Add(30 * time.Second)
	_, ok := c.Get("e1", "q")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("e1", "q")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.evictExpired()
	assert.Zero(t, c.Len())
}

func TestAnswerCache_CloseTwice(t *testing.T) {
	c := NewAnswerCache(time.Second)
	c.Close()
	assert.NotPanics(t, c.Close)
}

func TestCleanupInterval(t *testing.T) {
	assert.Equal(t, 30*time.Second, cleanupInterval(30*time.Second))
	assert.Equal(t, 5*time.Minute, cleanupInterval(time.Hour))
}
