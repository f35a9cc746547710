// Package unread, okunmamış mesaj sayımının saf (pure) çekirdeğini barındırır.
//
// Bu paket I/O yapmaz — DB, network, clock erişimi yoktur. Tüm fonksiyonlar
// verilen snapshot'tan deterministik sonuç üretir. Aynı hesaplama daha önce
// hem chat panelinde hem dashboard badge'inde ayrı ayrı (ve tutarsız)
// yaşıyordu; burada tek bir yerde toplanır, tüm tüketiciler bunu kullanır.
//
// İki parça:
//   - identity.go: konuşma kimliği çözümleme (grup / 1:1)
//   - aggregate.go: snapshot bazlı okunmamış sayım
package unread

import (
	"fmt"
	"strings"

	"github.com/dayzzy/tasky/pkg"
)

// Kind, bir konuşmanın türünü temsil eder.
type Kind string

const (
	// KindGroup: workspace'in tek grup sohbeti. Kimlik = workspace ID.
	KindGroup Kind = "group"
	// KindDirect: iki katılımcı arasındaki 1:1 sohbet.
	KindDirect Kind = "direct"
)

// GroupID, bir workspace'in grup konuşma kimliğini döner.
//
// Bir workspace'in tam olarak bir grup odası vardır — workspace ID'si
// doğrudan konuşma kimliği olarak kullanılır, ayrı bir kayıt tutulmaz.
func GroupID(workspaceID string) (string, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	if workspaceID == "" {
		return "", fmt.Errorf("%w: workspace id is empty", pkg.ErrInvalidParticipant)
	}
	return workspaceID, nil
}

// DirectID, iki katılımcı arasındaki 1:1 konuşmanın kimliğini döner.
//
// Kimlik katılımcıların saf bir fonksiyonudur: iki email küçük harfe
// çevrilir, sıralanır ve "_" ile birleştirilir. Böylece her iki taraf da
// aynı kimliği bağımsız olarak hesaplar — sunucudan lookup gerekmez:
//
//	DirectID("V@x.com", "u@x.com") == DirectID("u@x.com", "v@x.com") == "u@x.com_v@x.com"
//
// Katılımcılardan biri boşsa ErrInvalidParticipant döner — çağıran taraf
// bu durumda read marker yazmamalı veya mesaj göndermemelidir.
func DirectID(a, b string) (string, error) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return "", fmt.Errorf("%w: both participants are required", pkg.ErrInvalidParticipant)
	}

	if a > b {
		a, b = b, a
	}
	return a + "_" + b, nil
}

// Resolve, mesaj türüne göre konuşma kimliğini çözümler.
//
// Grup mesajları için katılımcı parametreleri yoksayılır;
// direct mesajlar için workspace ID yalnızca scope bilgisidir,
// kimliğe dahil edilmez.
func Resolve(kind Kind, workspaceID, participantA, participantB string) (string, error) {
	switch kind {
	case KindGroup:
		return GroupID(workspaceID)
	case KindDirect:
		return DirectID(participantA, participantB)
	default:
		return "", fmt.Errorf("%w: unknown conversation kind %q", pkg.ErrBadRequest, kind)
	}
}
