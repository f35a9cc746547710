// Package main, tasky backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'larla)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. WebSocket Hub'ı başlat
//  5. Service'leri oluştur (repository'ler + hub ile)
//  6. Hub callback'lerini bağla
//  7. Handler'ları oluştur (service'ler ile)
//  8. HTTP router'ı kur, route'ları bağla
//  9. CORS yapılandır
// 10. HTTP Server'ı başlat + arka plan temizlik görevleri
// 11. Graceful shutdown
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/dayzzy/tasky/config"
	"github.com/dayzzy/tasky/database"
	"github.com/dayzzy/tasky/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] tasky server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	//
	// Migration'lar binary'ye gömülü (go:embed) — deploy edilen tek dosya
	// çalışma dizininden bağımsız olarak şemayı kurabilir.
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 4. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır.
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()

	// ─── 5. Service Layer ───
	svcs, err := initServices(db.Conn, repos, hub, cfg)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}

	// ─── 6. Hub Callback'leri ───
	registerHubCallbacks(hub, repos.User, svcs.Unread, svcs.ReadState)

	go hub.Run()

	// ─── 7. Handler Layer ───
	h := initHandlers(svcs, hub, cfg)

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User, repos.Workspace, cfg)

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server + arka plan görevleri ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Süresi dolan session'lar saatte bir temizlenir.
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := svcs.Auth.CleanupExpiredSessions(cleanupCtx); err != nil {
					log.Printf("[main] session cleanup failed: %v", err)
				} else if n > 0 {
					log.Printf("[main] cleaned up %d expired sessions", n)
				}
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	// ─── 11. Graceful Shutdown ───
	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı —
	// yeni request kabul edilmez, mevcutların bitmesi beklenir (5sn timeout).
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
