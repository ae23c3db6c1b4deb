package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/book"
	"bookstore-be/internal/config"
	"bookstore-be/internal/db"
	"bookstore-be/internal/events"
	"bookstore-be/internal/lists"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/middleware"
	"bookstore-be/internal/order"
	"bookstore-be/internal/rest"
	"bookstore-be/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		logger.L().Fatal("token service", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = book.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer cache.Close()
	}

	publisher := events.New(cfg.KafkaBrokers)
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(database, cfg, tokens, cache, publisher, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// setupRouter builds the services over database and wires them to HTTP.
// cache may be nil, in which case books are always read from Postgres.
func setupRouter(
	database *sql.DB,
	cfg *config.Config,
	tokens *auth.TokenService,
	cache *redis.Client,
	publisher events.Publisher,
	limiter *middleware.RateLimiter,
) http.Handler {
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	bookRepo := book.NewRepository(database)
	if cache != nil {
		bookRepo = book.NewCachedRepository(bookRepo, cache, cfg.BookCacheTTL)
	}
	bookSvc := book.NewService(bookRepo)

	listSvc := lists.NewService(lists.NewRepository(database), bookSvc)

	orderSvc := order.NewService(order.NewRepository(database), listSvc, bookSvc, userRepo, publisher)

	h := &rest.Handler{
		UserSvc:  userSvc,
		BookSvc:  bookSvc,
		ListSvc:  listSvc,
		OrderSvc: orderSvc,
	}
	return rest.NewRouter(h, tokens, limiter)
}
