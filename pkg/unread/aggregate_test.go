package unread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func msg(sender, conv string, offset time.Duration) Message {
	return Message{SenderEmail: sender, ConversationID: conv, SentAt: base.Add(offset)}
}

// Marker yoksa hiçbir şey okunmuş sayılmaz — diğer göndericilerin
// tüm mesajları okunmamıştır.
func TestCountNoMarkerDefaultsToEverythingUnread(t *testing.T) {
	messages := []Message{
		msg("v@x.com", "ws-1", 0),
		msg("v@x.com", "ws-1", time.Second),
		msg("w@x.com", "ws-1", 2*time.Second),
	}

	counts := Count("u@x.com", messages, nil)

	assert.Equal(t, 3, counts.For("ws-1"))
	assert.Equal(t, 3, counts.Total)
}

// Kendi mesajlarım kendi sayacıma asla katkı yapmaz.
func TestCountExcludesOwnMessages(t *testing.T) {
	messages := []Message{
		msg("u@x.com", "ws-1", 0),
		msg("U@X.COM", "ws-1", time.Second), // büyük/küçük harf farkı da "ben"dir
		msg("v@x.com", "ws-1", 2*time.Second),
	}

	counts := Count("u@x.com", messages, nil)

	assert.Equal(t, 1, counts.For("ws-1"))
	assert.Equal(t, 1, counts.Total)
}

func TestCountRespectsReadMarker(t *testing.T) {
	conv := "u@x.com_v@x.com"
	messages := []Message{
		msg("v@x.com", conv, 0),
		msg("v@x.com", conv, 10*time.Second),
		msg("v@x.com", conv, 20*time.Second),
	}

	tests := []struct {
		name     string
		lastRead time.Time
		want     int
	}{
		{"marker before all", base.Add(-time.Minute), 3},
		{"marker between", base.Add(15 * time.Second), 1},
		{"marker at last message", base.Add(20 * time.Second), 0},
		{"marker after all", base.Add(time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := Count("u@x.com", messages, map[string]time.Time{conv: tt.lastRead})
			assert.Equal(t, tt.want, counts.For(conv))
		})
	}
}

// Aynı snapshot iki kez beslendiğinde sonuç birebir aynı olmalı —
// gizli akümülatör yok.
func TestCountIsIdempotent(t *testing.T) {
	conv := "u@x.com_v@x.com"
	messages := []Message{
		msg("v@x.com", conv, 0),
		msg("v@x.com", "ws-1", time.Second),
		msg("u@x.com", "ws-1", 2*time.Second),
	}
	markers := map[string]time.Time{"ws-1": base}

	first := Count("u@x.com", messages, markers)
	second := Count("u@x.com", messages, markers)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.For(conv))
	assert.Equal(t, 1, first.For("ws-1"))
	assert.Equal(t, 2, first.Total)
}

// Tipik akış: V, direct odaya M1 gönderir (marker yok) → 1.
// U odayı açar, markRead → 0. V, M2 gönderir → tekrar 1.
func TestCountMarkReadScenario(t *testing.T) {
	conv, err := DirectID("u@x.com", "v@x.com")
	require.NoError(t, err)

	m1 := msg("v@x.com", conv, 100*time.Second)

	counts := Count("u@x.com", []Message{m1}, nil)
	assert.Equal(t, 1, counts.For(conv))

	// markRead @ t=150
	markers := map[string]time.Time{conv: base.Add(150 * time.Second)}
	counts = Count("u@x.com", []Message{m1}, markers)
	assert.Equal(t, 0, counts.For(conv))

	// M2 @ t=200
	m2 := msg("v@x.com", conv, 200*time.Second)
	counts = Count("u@x.com", []Message{m1, m2}, markers)
	assert.Equal(t, 1, counts.For(conv))
	assert.Equal(t, 1, counts.Total)
}

func TestCountSeparatesConversations(t *testing.T) {
	messages := []Message{
		msg("v@x.com", "ws-1", 0),
		msg("v@x.com", "u@x.com_v@x.com", time.Second),
		msg("w@x.com", "u@x.com_w@x.com", 2*time.Second),
		msg("w@x.com", "u@x.com_w@x.com", 3*time.Second),
	}

	counts := Count("u@x.com", messages, nil)

	assert.Equal(t, 1, counts.For("ws-1"))
	assert.Equal(t, 1, counts.For("u@x.com_v@x.com"))
	assert.Equal(t, 2, counts.For("u@x.com_w@x.com"))
	assert.Equal(t, 4, counts.Total)
}

func TestCountEmptySnapshot(t *testing.T) {
	counts := Count("u@x.com", nil, nil)
	assert.Equal(t, 0, counts.Total)
	assert.Empty(t, counts.ByConversation)
}
