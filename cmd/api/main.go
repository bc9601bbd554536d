package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookvault/bookvault-go/internal/config"
	"github.com/bookvault/bookvault-go/internal/crypto"
	"github.com/bookvault/bookvault-go/internal/handler"
	"github.com/bookvault/bookvault-go/internal/repository"
	"github.com/bookvault/bookvault-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open record store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	authService := service.NewAuthService(repository.NewUserRepository(store), cfg.JWTSecret, cfg.JWTExpiry, crypto.DefaultHashParams())
	bookService := service.NewBookService(repository.NewBookRepository(store))

	router := handler.NewRouter(ctx,
		handler.NewAuthHandler(authService),
		handler.NewBookHandler(bookService),
		handler.RouterConfig{
			JWTSecret:     cfg.JWTSecret,
			AuthRateRPS:   cfg.AuthRateRPS,
			AuthRateBurst: cfg.AuthRateBurst,
		},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// openStore builds the record store selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, func(), error) {
	switch cfg.StoreDriver {
	case "file":
		store, err := repository.NewFileStore(cfg.DataDir)
		return store, func() {}, err
	case repository.DialectSQLite, repository.DialectMySQL:
		db, err := repository.NewDB(cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewSQLStore(ctx, db, cfg.StoreDriver)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
