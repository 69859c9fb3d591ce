package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "membo/internal/adapters/email"
	web "membo/internal/adapters/http"
	"membo/internal/adapters/http/perf"
	"membo/internal/adapters/storage"
	awardStore "membo/internal/adapters/storage/award"
	bookingStore "membo/internal/adapters/storage/booking"
	brandingStore "membo/internal/adapters/storage/branding"
	classStore "membo/internal/adapters/storage/class"
	settingStore "membo/internal/adapters/storage/setting"
	statsStore "membo/internal/adapters/storage/stats"
	userStore "membo/internal/adapters/storage/user"
	"membo/internal/adapters/zoezi"
	"membo/internal/application/auth"
	"membo/internal/application/orchestrators"
	"membo/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Environment != "production" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	schema, err := storage.SchemaVersion(db)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	users := userStore.NewSQLiteStore(timedDB)
	settings := settingStore.NewSQLiteStore(timedDB)
	brandings := brandingStore.NewSQLiteStore(timedDB)

	generateID := func() string { return uuid.New().String() }
	seedDeps := orchestrators.SeedDeps{
		UserStore:     users,
		SettingsStore: settings,
		BrandingStore: brandings,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		GenerateID:    generateID,
		Now:           time.Now,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.EmailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Environment == "production" {
			log.Println("WARNING: MEMBO_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set MEMBO_RESEND_KEY for real delivery)")
		}
	}

	var authenticator auth.Authenticator
	switch cfg.AuthStrategy {
	case config.AuthMock:
		authenticator = &auth.MockAuthenticator{Users: users, GenerateID: generateID, Now: time.Now}
		log.Println("WARNING: mock authentication enabled — demo logins accepted")
	default:
		authenticator = &auth.CredentialAuthenticator{Users: users}
	}

	server := &web.Server{
		Users:     users,
		Classes:   classStore.NewSQLiteStore(timedDB),
		Bookings:  bookingStore.NewSQLiteStore(timedDB),
		Awards:    awardStore.NewSQLiteStore(timedDB),
		Settings:  settings,
		Brandings: brandings,
		Stats:     statsStore.NewSQLStore(db),

		Authenticator: authenticator,
		Tokens:        auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL),
		Provider:      zoezi.NewClient(),
		EmailSender:   sender,
		Collector:     collector,
		ClubName:      cfg.ClubName,

		RateLimitPerSecond: cfg.RateLimitPerSecond,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer server.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Membo %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, cfg.Environment, schema)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
