// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/dayzzy/tasky/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı repository değişkenleri yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Task, vb.)
type Repositories struct {
	User          repository.UserRepository
	Session       repository.SessionRepository
	Workspace     repository.WorkspaceRepository
	WorkspaceMute repository.WorkspaceMuteRepository
	Task          repository.TaskRepository
	Column        repository.ColumnRepository
	Message       repository.MessageRepository
	ReadMarker    repository.ReadMarkerRepository
	Focus         repository.FocusRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:          repository.NewSQLiteUserRepo(conn),
		Session:       repository.NewSQLiteSessionRepo(conn),
		Workspace:     repository.NewSQLiteWorkspaceRepo(conn),
		WorkspaceMute: repository.NewSQLiteWorkspaceMuteRepo(conn),
		Task:          repository.NewSQLiteTaskRepo(conn),
		Column:        repository.NewSQLiteColumnRepo(conn),
		Message:       repository.NewSQLiteMessageRepo(conn),
		ReadMarker:    repository.NewSQLiteReadMarkerRepo(conn),
		Focus:         repository.NewSQLiteFocusRepo(conn),
	}
}
