package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "p2p-lending-backend/internal/adapter/http"
	mw "p2p-lending-backend/internal/adapter/middleware"
	repo "p2p-lending-backend/internal/adapter/repository/mysql"
	"p2p-lending-backend/internal/config"
	"p2p-lending-backend/internal/infrastructure/cache"
	"p2p-lending-backend/internal/infrastructure/db"
	"p2p-lending-backend/internal/logger"
	"p2p-lending-backend/internal/security"
	"p2p-lending-backend/internal/usecase/account"
	"p2p-lending-backend/internal/usecase/loanoffer"
	"p2p-lending-backend/internal/usecase/loanrequest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("open mysql", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
	}

	rdb, err := cache.OpenRedis(context.Background(), cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	if err != nil {
		log.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())

	users := repo.NewUserRepository(gdb)
	requests := repo.NewLoanRequestRepository(gdb)
	offers := repo.NewLoanOfferRepository(gdb)
	tx := repo.NewGormUoW(gdb)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), mw.RequestLogger(log))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health: httpadp.NewHealthHandler(map[string]httpadp.Probe{
			"database": func(ctx context.Context) error { return db.Ping(ctx, gdb) },
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Auth:     httpadp.NewAuthHandler(account.NewUsecase(users, tx, tokens)),
		Requests: httpadp.NewLoanRequestHandler(loanrequest.NewUsecase(requests)),
		Offers:   httpadp.NewLoanOfferHandler(loanoffer.NewUsecase(requests, offers, tx, log.Named("loanoffer"))),
	}, mw.JWTAuth(tokens), mw.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log.Named("idempotency")))

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
