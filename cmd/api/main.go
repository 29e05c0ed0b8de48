package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-gym-api/internal/core/auth"
	"go-gym-api/internal/core/cache"
	"go-gym-api/internal/core/config"
	corefb "go-gym-api/internal/core/firebase"
	"go-gym-api/internal/core/logger"
	"go-gym-api/internal/core/server"
	"go-gym-api/internal/identity"
	"go-gym-api/internal/service"
	"go-gym-api/internal/store"
	"go-gym-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	var log *zap.Logger
	var cleanup func()
	if cfg.Log.File != "" {
		log, cleanup = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON,
			cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	} else {
		log, cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	defer cleanup()

	ctx := context.Background()

	// Backends. Without a Firebase project the store is in-memory and the
	// credential provider is local; that is the dev profile.
	var (
		db       store.DocumentStore
		creds    identity.CredentialProvider
		verifier identity.TokenVerifier
	)
	if cfg.Firebase.ProjectID != "" {
		clients, err := corefb.New(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatal("firebase init", zap.Error(err))
		}
		defer clients.Close()
		db = store.NewFirestore(clients.Firestore)
		creds = identity.NewFirebaseProvider(clients.Auth)
		verifier = identity.NewPasswordVerifier(cfg.Firebase.WebAPIKey)
		log.Info("firestore connected", zap.String("project", cfg.Firebase.ProjectID))
	} else {
		mem := store.NewMemory()
		local := identity.NewLocalProvider(mem)
		db, creds, verifier = mem, local, local
		log.Warn("no firebase project configured, using in-memory store")
	}

	var rc *cache.Cache
	cacheTTL := time.Duration(cfg.Cache.TTLSec) * time.Second
	if cfg.Cache.Enabled && cfg.Redis.Addr != "" {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	cat := service.NewCatalog(db, rc, cacheTTL, log)
	idn := service.NewIdentity(db, creds, verifier, jwter, log)

	r := router.NewAPIEngine(log, cat, idn, jwter)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("gym api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("gym api start FAILED", zap.Error(err))
		}
	}()
	log.Info("gym api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("gym api stopped gracefully")
}
