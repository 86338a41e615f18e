/*
Package main is the entry point for the chat server.

It loads configuration, initializes the global logging system, opens the configured
store and upload storage, builds the HTTP router and gracefully handles operating
system interrupt signals (SIGINT, SIGTERM).
*/
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

	"massg/internal/app/chat"
	"massg/internal/app/db"
	"massg/internal/app/message"
	"massg/internal/app/session"
	"massg/internal/app/storage"
	"massg/internal/app/store"
	"massg/internal/app/store/boltdb"
	"massg/internal/app/store/memory"
	"massg/internal/app/store/sqlite"
	"massg/internal/app/user"
	"massg/internal/configs"
	"massg/internal/handler"
	"massg/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("store_driver", cfg.StoreDriver).
		Str("storage_driver", cfg.StorageDriver).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logx.Fatal(err, "Failed to open store", "driver", cfg.StoreDriver)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logx.Error(err, "Failed to close store")
		}
	}()

	storageService, err := storage.NewStorageService(ctx, storage.ServiceConfig{
		Driver:            cfg.StorageDriver,
		LocalDir:          cfg.UploadsDir,
		LocalURLPrefix:    handler.UploadsURLPrefix,
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3PublicURL:       cfg.S3PublicURL,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize upload storage", "driver", cfg.StorageDriver)
	}

	tokens := session.NewTokens(st)
	registry := chat.NewRegistry()

	deps := &handler.AppDeps{
		Config:         cfg,
		Credentials:    user.NewCredentials(st),
		Tokens:         tokens,
		Authenticator:  session.NewAuthenticator(tokens),
		Messages:       message.NewLog(st),
		Registry:       registry,
		StorageService: storageService,
	}

	// Setup HTTP server and routes
	router, stopRouter := handler.Router(deps)
	defer stopRouter()

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info("Chat server starting", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// hijacked websocket connections are not tracked by the server
	registry.Shutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}

// openStore opens the persistence backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *configs.AppConfig) (store.Store, error) {
	switch cfg.StoreDriver {
	case configs.StorePostgres:
		return db.Open(ctx, cfg.DatabaseDSN)
	case configs.StoreSQLite:
		return sqlite.New(ctx, cfg.SQLitePath)
	case configs.StoreBolt:
		return boltdb.New(ctx, cfg.BoltPath)
	case configs.StoreMemory:
		logx.Warn("Using in-memory store: data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
