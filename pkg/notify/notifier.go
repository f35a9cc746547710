// Package notify, gelen her mesaj için "hangi ses çalınmalı" kararını verir.
//
// Karar bir state machine'dir ve her WebSocket bağlantısı için ayrı bir
// instance yaşar (aynı kullanıcının iki sekmesi farklı odalarda olabilir):
//
//	InitialSync ──(ilk snapshot işlendi)──► Live
//
// InitialSync durumunda hiçbir ses çalınmaz — bağlantı kurulduğunda gelen
// ilk snapshot tamamen tarihsel veridir. Live durumunda her yeni mesaj
// sırayla şu kurallardan geçer:
//
//  1. Gönderen ben isem → sessiz (self-notification yok).
//  2. Mesaj yaşı staleness eşiğini aşıyorsa → sessiz. Reconnect sonrası
//     subscription'lar "added" diye eski mesaj patlaması teslim edebilir;
//     bu guard olmadan her reconnect bir bildirim sesi fırtınası çalar.
//  3. Mesajın konuşması şu an açık olan oda ise → "in_room" sesi.
//  4. Aksi halde → "background" bildirim sesi.
//
// Ses çalma tarayıcıda gerçekleşir; playback hataları (autoplay engeli vb.)
// client tarafında yutulur, sunucuya hiç dönmez.
package notify

import (
	"strings"
	"sync"
	"time"
)

// Sound, karar sonucunu temsil eder.
type Sound string

const (
	// SoundNone: ses çalınmaz (initial sync, kendi mesajı veya bayat mesaj).
	SoundNone Sound = "none"
	// SoundInRoom: mesaj şu an açık olan odaya geldi.
	SoundInRoom Sound = "in_room"
	// SoundBackground: mesaj kapalı bir odaya geldi.
	SoundBackground Sound = "background"
)

// DefaultStaleness, bayat mesaj eşiğinin varsayılanıdır.
// Kesinlik gereksinimi değil, ayarlanabilir bir parametredir —
// config üzerinden değiştirilebilir (UNREAD_STALENESS_SECONDS).
const DefaultStaleness = 5 * time.Second

// Notifier, tek bir bağlantının bildirim karar durumunu tutar.
//
// Mutex'le korunur çünkü iki ayrı goroutine dokunur: mesaj fan-out'u
// Decide'ı çağırırken, client'ın ReadPump'ı SetOpenConversation ile
// "şu an açık oda" hücresini günceller. Açık oda bilgisi her değişimde
// buraya yazılır — subscription kurulurken yakalanan bir değer DEĞİLDİR,
// aksi halde uzun ömürlü callback bayat oda bilgisiyle karar verirdi.
type Notifier struct {
	mu        sync.Mutex
	myEmail   string
	staleness time.Duration
	live      bool
	openConv  string
}

// New, InitialSync durumunda yeni bir Notifier oluşturur.
// staleness <= 0 verilirse DefaultStaleness kullanılır.
func New(myEmail string, staleness time.Duration) *Notifier {
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	return &Notifier{
		myEmail:   strings.ToLower(strings.TrimSpace(myEmail)),
		staleness: staleness,
	}
}

// MarkLive, InitialSync → Live geçişini yapar.
// Bağlantının ilk snapshot'ı (ready event) gönderildikten sonra çağrılır.
// Tekrarlanan çağrılar zararsızdır.
func (n *Notifier) MarkLive() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.live = true
}

// SetOpenConversation, kullanıcının şu an görüntülediği konuşmayı günceller.
// Boş string "hiçbir oda açık değil" demektir (örn. chat paneli kapandı).
func (n *Notifier) SetOpenConversation(conversationID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.openConv = conversationID
}

// OpenConversation, şu an açık olan konuşma kimliğini döner.
func (n *Notifier) OpenConversation() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.openConv
}

// Decide, tek bir mesaj için ses kararını verir.
//
// now parametresi test edilebilirlik içindir — üretimde time.Now() geçilir.
// sentAt sunucunun atadığı mesaj zamanıdır; now − sentAt mesajın yaşıdır.
func (n *Notifier) Decide(senderEmail, conversationID string, sentAt, now time.Time) Sound {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.live {
		return SoundNone
	}
	if strings.ToLower(strings.TrimSpace(senderEmail)) == n.myEmail {
		return SoundNone
	}
	if now.Sub(sentAt) > n.staleness {
		return SoundNone
	}
	if conversationID != "" && conversationID == n.openConv {
		return SoundInRoom
	}
	return SoundBackground
}
