package unread

import (
	"strings"
	"time"
)

// Message, sayım için gereken minimal mesaj görünümüdür.
// models.Message'ın tamamına ihtiyaç yok — paket bağımsız kalsın diye
// sadece sayımı etkileyen alanlar taşınır.
type Message struct {
	SenderEmail    string
	ConversationID string
	SentAt         time.Time
}

// Counts, bir sayım turunun sonucu: konuşma başına sayaç + genel toplam.
type Counts struct {
	ByConversation map[string]int `json:"by_conversation"`
	Total          int            `json:"total"`
}

// Count, verilen snapshot'tan okunmamış mesaj sayılarını hesaplar.
//
// Algoritma (her mesaj için):
//  1. Gönderen ben isem → sayma (kendi mesajım okunmamış sayılmaz).
//  2. Konuşmanın read marker'ına bak — yoksa epoch zero kabul et
//     (hiçbir şey okunmamış: tüm mesajlar sayılır).
//  3. SentAt > lastRead ise sayacı artır.
//
// Hesaplama idempotent ve re-entrant'tır: her çağrı tam snapshot'tan
// sıfırdan hesaplar, gizli akümülatör yoktur. Kaçırılan bir event
// sayaçları kalıcı olarak kaydıramaz — bir sonraki turda düzelir.
// Mesaj hacmi chat ölçeğinde küçük olduğu için CPU maliyeti önemsizdir.
//
// "Açık odayı badge'den hariç tut" kuralı BURADA uygulanmaz — o bir
// sunum politikasıdır ve tüketici tarafında (ws fan-out) uygulanır.
// Ham sayım her zaman tamdır; "mark all read" gibi özellikler buna güvenir.
func Count(myEmail string, messages []Message, lastRead map[string]time.Time) Counts {
	myEmail = strings.ToLower(strings.TrimSpace(myEmail))

	counts := Counts{ByConversation: make(map[string]int)}

	for _, m := range messages {
		if strings.ToLower(m.SenderEmail) == myEmail {
			continue
		}
		if m.ConversationID == "" {
			continue
		}

		// Marker yoksa zero value (time.Time{}) kalır — her mesaj ondan yenidir.
		marker := lastRead[m.ConversationID]
		if m.SentAt.After(marker) {
			counts.ByConversation[m.ConversationID]++
			counts.Total++
		}
	}

	return counts
}

// For, tek bir konuşmanın sayacını döner. Konuşma hiç mesaj almamışsa
// veya tamamı okunmuşsa 0 döner — ikisi ayırt edilmez.
func (c Counts) For(conversationID string) int {
	return c.ByConversation[conversationID]
}
