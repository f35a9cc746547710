// Package cache — Generic in-memory TTL cache.
//
// Mesaj fan-out sırasında her mesajda üyelik sorgusu atmamak için
// workspace üye listeleri kısa TTL ile bellekte tutulur. Üyelik
// değiştiğinde ilgili key invalidate edilir.
//
// Thread-safe: sync.RWMutex — birden fazla goroutine aynı anda okuyabilir.
package cache

import (
	"sync"
	"time"
)

// entry, cache'teki tek bir kayıttır.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, generic in-memory TTL cache.
//
// K ve V tip parametreleri kullanım yerinde belirlenir:
//
//	c := cache.New[string, []string](30*time.Second, 5*time.Minute)
//	c.Set("ws-1", emails)
//	emails, ok := c.Get("ws-1")
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration

	stopCleanup chan struct{}
}

// New, cache'i oluşturur ve periyodik temizleme goroutine'ini başlatır.
//
// Her Get zaten süre kontrolü yapar; cleanupInterval sadece süresi dolan
// kayıtların map'ten fiziksel silinme sıklığıdır (bellek birikmesini önler).
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get, süresi dolmamış bir kaydı döner; yoksa (zero value, false).
// Süresi dolan kayıt burada silinmez — RLock yeterli kalsın diye
// fiziksel silme periyodik cleanup'a bırakılır.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, cache'e bir değer yazar (TTL ile).
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete, belirli bir key'i cache'ten siler.
// Kullanım: üye eklendiğinde/çıkarıldığında workspace entry'sini invalidate etmek.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len, cache'teki toplam entry sayısını döner (süresi dolmuşlar dahil).
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close, periyodik temizleme goroutine'ini durdurur.
func (c *TTLCache[K, V]) Close() {
	close(c.stopCleanup)
}

func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
