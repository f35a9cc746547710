package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New[string, []string](time.Minute, time.Minute)
	defer c.Close()

	c.Set("ws-1", []string{"a@x.com", "b@x.com"})

	got, ok := c.Get("ws-1")
	assert.True(t, ok)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, got)
}

func TestGetMissingKey(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	got, ok := c.Get("yok")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestExpiredEntryNotReturned(t *testing.T) {
	// Cleanup aralığı uzun — süre kontrolünün Get'te yapıldığını doğrular.
	c := New[string, string](10*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDeleteInvalidates(t *testing.T) {
	c := New[string, string](time.Minute, time.Minute)
	defer c.Close()

	c.Set("ws-1", "v")
	c.Delete("ws-1")

	_, ok := c.Get("ws-1")
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	c := New[string, string](time.Minute, time.Minute)
	defer c.Close()

	c.Set("k", "eski")
	c.Set("k", "yeni")

	got, _ := c.Get("k")
	assert.Equal(t, "yeni", got)
	assert.Equal(t, 1, c.Len())
}

func TestCleanupEvictsExpired(t *testing.T) {
	c := New[string, string](10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("k", "v")
	assert.Equal(t, 1, c.Len())

	// TTL + cleanup aralığından uzun bekle — entry fiziksel olarak silinmeli.
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}
