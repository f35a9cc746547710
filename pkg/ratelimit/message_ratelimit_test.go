package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)
	defer rl.Close()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("user-1"), "message %d should be allowed", i+1)
	}
}

func TestBlockOverLimit(t *testing.T) {
	rl := NewMessageRateLimiter(3, 5*time.Second, 15*time.Second)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("user-1"))
	}

	// Limit aşıldı — cooldown başlar, sonraki denemeler de reddedilir.
	assert.False(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))
}

func TestUsersAreIndependent(t *testing.T) {
	rl := NewMessageRateLimiter(1, 5*time.Second, 15*time.Second)
	defer rl.Close()

	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))

	// Başka kullanıcının sayacı etkilenmez.
	assert.True(t, rl.Allow("user-2"))
}

func TestWindowResets(t *testing.T) {
	rl := NewMessageRateLimiter(2, 20*time.Millisecond, 15*time.Second)
	defer rl.Close()

	assert.True(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-1"))

	// Pencere dolduktan sonra sayaç sıfırdan başlar.
	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("user-1"))
}

func TestCooldownExpires(t *testing.T) {
	rl := NewMessageRateLimiter(1, 10*time.Millisecond, 30*time.Millisecond)
	defer rl.Close()

	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1")) // cooldown başladı

	time.Sleep(15 * time.Millisecond)
	assert.False(t, rl.Allow("user-1")) // hâlâ cooldown'da

	time.Sleep(25 * time.Millisecond)
	assert.True(t, rl.Allow("user-1")) // cooldown bitti, yeni pencere
}
