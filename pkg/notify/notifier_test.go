package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// İlk snapshot tamamen tarihseldir — Live'a geçilmeden hiçbir ses çalınmaz.
func TestInitialSyncIsSilent(t *testing.T) {
	n := New("u@x.com", DefaultStaleness)

	// 5 tarihsel mesaj, hepsi taze bile olsa sessiz kalmalı.
	for i := 0; i < 5; i++ {
		sound := n.Decide("v@x.com", "ws-1", now, now)
		assert.Equal(t, SoundNone, sound)
	}

	// Live'a geçtikten sonra kapalı odaya gelen 1 yeni mesaj → background.
	n.MarkLive()
	sound := n.Decide("v@x.com", "ws-1", now, now)
	assert.Equal(t, SoundBackground, sound)
}

func TestDecideLiveRules(t *testing.T) {
	tests := []struct {
		name     string
		sender   string
		conv     string
		openConv string
		age      time.Duration
		want     Sound
	}{
		{"own message suppressed", "u@x.com", "ws-1", "", 0, SoundNone},
		{"own message case-insensitive", "U@X.com", "ws-1", "", 0, SoundNone},
		{"stale message suppressed", "v@x.com", "ws-1", "", 10 * time.Second, SoundNone},
		{"fresh message open room", "v@x.com", "ws-1", "ws-1", time.Second, SoundInRoom},
		{"fresh message closed room", "v@x.com", "ws-1", "other", time.Second, SoundBackground},
		{"no room open", "v@x.com", "ws-1", "", time.Second, SoundBackground},
		{"exactly at threshold not stale", "v@x.com", "ws-1", "", DefaultStaleness, SoundBackground},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New("u@x.com", DefaultStaleness)
			n.MarkLive()
			n.SetOpenConversation(tt.openConv)

			sound := n.Decide(tt.sender, tt.conv, now.Add(-tt.age), now)
			assert.Equal(t, tt.want, sound)
		})
	}
}

// Açık oda bilgisi mutable bir hücredir — oda değiştikçe karar da değişir.
// Subscription kurulumunda yakalanmış bir değer olsaydı bu test geçmezdi.
func TestOpenConversationUpdatesBetweenDecisions(t *testing.T) {
	n := New("u@x.com", DefaultStaleness)
	n.MarkLive()

	n.SetOpenConversation("ws-1")
	assert.Equal(t, SoundInRoom, n.Decide("v@x.com", "ws-1", now, now))

	n.SetOpenConversation("u@x.com_v@x.com")
	assert.Equal(t, SoundBackground, n.Decide("v@x.com", "ws-1", now, now))

	n.SetOpenConversation("")
	assert.Equal(t, SoundBackground, n.Decide("v@x.com", "ws-1", now, now))
}

func TestCustomStalenessThreshold(t *testing.T) {
	n := New("u@x.com", 30*time.Second)
	n.MarkLive()

	// 10 saniyelik mesaj varsayılan eşikte bayat olurdu, 30sn eşikte değil.
	assert.Equal(t, SoundBackground, n.Decide("v@x.com", "ws-1", now.Add(-10*time.Second), now))
	assert.Equal(t, SoundNone, n.Decide("v@x.com", "ws-1", now.Add(-31*time.Second), now))
}

func TestZeroStalenessFallsBackToDefault(t *testing.T) {
	n := New("u@x.com", 0)
	n.MarkLive()

	assert.Equal(t, SoundBackground, n.Decide("v@x.com", "ws-1", now.Add(-time.Second), now))
	assert.Equal(t, SoundNone, n.Decide("v@x.com", "ws-1", now.Add(-6*time.Second), now))
}

func TestMarkLiveIsIdempotent(t *testing.T) {
	n := New("u@x.com", DefaultStaleness)
	n.MarkLive()
	n.MarkLive()

	assert.Equal(t, SoundBackground, n.Decide("v@x.com", "ws-1", now, now))
}
