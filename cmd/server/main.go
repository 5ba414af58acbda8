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

	_ "minibank/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"minibank/internal/auth"
	"minibank/internal/cache"
	"minibank/internal/config"
	"minibank/internal/db"
	"minibank/internal/handler"
	"minibank/internal/logging"
	"minibank/internal/repository"
	"minibank/internal/router"
	"minibank/internal/service"
)

// @title Minibank API
// @version 1.0
// @description Banking demo API with registration, JWT login and an account balance page.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	bootLog := logging.New(os.Stderr, "info", "text")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error(ctx, "load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	gormDB, err := db.NewSQLite(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("database migrate: %w", err)
	}
	log.Info(ctx, "connected to the bank database", "path", cfg.DatabasePath)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient == nil {
		log.Info(ctx, "account cache disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.AccessSecret, cfg.AccessTokenTTL)
	hasher := auth.NewBcryptHasher()

	// Initialize services
	authService, err := service.NewAuthService(userRepo, hasher, jwtService, cfg.AdminKey)
	if err != nil {
		return fmt.Errorf("auth service init: %w", err)
	}
	accountService := service.NewAccountService(accountRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true
	if err := router.Register(
		e,
		log,
		jwtService,
		handler.NewAuthHandler(authService, log),
		handler.NewTransactionHandler(accountService, log),
	); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", addr, "swagger", "http://localhost"+addr+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var startErr error
	select {
	case <-quit:
	case err := <-errCh:
		startErr = fmt.Errorf("server start: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown", "error", err)
	}
	log.Info(ctx, "server stopped")
	return startErr
}
