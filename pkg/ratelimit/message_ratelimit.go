// Package ratelimit — Mesaj spam koruması için kullanıcı bazlı rate limiting.
//
// İki durumlu tasarım:
// - Normal mod: window içinde maxMessages'a kadar mesaj geçer.
// - Cooldown mod: limit aşıldığında cooldown süresi boyunca tüm mesajlar
//   reddedilir; süre bitince pencere sıfırdan başlar.
//
// Window kısa (saniyeler), ceza süresi daha uzun — kısa patlamalara
// tolerans, ısrarlı spam'e bekleme.
package ratelimit

import (
	"sync"
	"time"
)

// messageBucket, bir kullanıcının sayaç ve cooldown durumunu tutar.
type messageBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// MessageRateLimiter, kullanıcı bazlı mesaj spam koruması.
//
// Kullanım:
//
//	limiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)
//	if !limiter.Allow(userID) { return pkg.ErrTooManyRequests }
type MessageRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*messageBucket
	maxMessages int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// NewMessageRateLimiter, limiter'ı oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
func NewMessageRateLimiter(maxMessages int, window, cooldown time.Duration) *MessageRateLimiter {
	rl := &MessageRateLimiter{
		buckets:     make(map[string]*messageBucket),
		maxMessages: maxMessages,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, kullanıcının mesaj göndermesine izin verilip verilmediğini döner.
// false dönerse caller 429 dönmelidir.
func (rl *MessageRateLimiter) Allow(userID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[userID]
	if !exists {
		rl.buckets[userID] = &messageBucket{count: 1, windowStart: now}
		return true
	}

	// Cooldown'da mıyız?
	if !b.cooldownUntil.IsZero() && now.Before(b.cooldownUntil) {
		return false
	}

	// Cooldown bitti veya window doldu → yeni pencere
	if !b.cooldownUntil.IsZero() || now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	b.count++
	if b.count > rl.maxMessages {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}
	return true
}

// Close, arka plan temizleme goroutine'ini durdurur.
func (rl *MessageRateLimiter) Close() {
	close(rl.stopCleanup)
}

// cleanupLoop, artık aktif olmayan bucket'ları periyodik olarak siler.
// Bucket'lar kısa ömürlüdür ama çok kullanıcıda bellek birikmesini önler.
func (rl *MessageRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictStale()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *MessageRateLimiter) evictStale() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, b := range rl.buckets {
		windowOver := now.Sub(b.windowStart) > rl.window
		cooldownOver := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)
		if windowOver && cooldownOver {
			delete(rl.buckets, userID)
		}
	}
}
