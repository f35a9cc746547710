// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız — karşılaştırma string yerine errors.Is ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner, handler katmanı HTTP status code'larına map'ler.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")

	// ErrTooManyRequests, rate limit aşıldığında döner (HTTP 429).
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidParticipant, konuşma kimliği çözümlenemediğinde döner —
	// katılımcı kimliği boş/eksik demektir. Bu hata senkron döner ve
	// çağıran taraf read marker yazmamalı, mesaj göndermemelidir.
	ErrInvalidParticipant = errors.New("invalid participant")
)
