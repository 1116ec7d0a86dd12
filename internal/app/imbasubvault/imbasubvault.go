// Package imbasubvault собирает основное HTTP-приложение: хранилище, кэш,
// брокер уведомлений, бизнес-сервисы и маршруты.
package imbasubvault

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/streadway/amqp"

	"github.com/naimbob95/ImbaSubVault/internal/cache"
	"github.com/naimbob95/ImbaSubVault/internal/config"
	"github.com/naimbob95/ImbaSubVault/internal/lib/jwt"
	"github.com/naimbob95/ImbaSubVault/internal/migrations"
	"github.com/naimbob95/ImbaSubVault/internal/rabbitmq"
	authservice "github.com/naimbob95/ImbaSubVault/internal/services/auth"
	categoryservice "github.com/naimbob95/ImbaSubVault/internal/services/category"
	dashboardservice "github.com/naimbob95/ImbaSubVault/internal/services/dashboard"
	subscriptionservice "github.com/naimbob95/ImbaSubVault/internal/services/subscription"
	userservice "github.com/naimbob95/ImbaSubVault/internal/services/user"
	"github.com/naimbob95/ImbaSubVault/internal/storage/repository"
)

// App хранит собранные зависимости основного приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New создает приложение: подключает Postgres, применяет миграции, сеет
// стандартные категории, подключает Redis и RabbitMQ и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, publisher, logger)
	userService := userservice.NewUserService(db, logger)
	categoryService := categoryservice.NewCategoryService(db, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, cacheRedis, logger)
	dashboardService := dashboardservice.NewDashboardService(subscriptionService)

	if err = categoryService.Seed(ctx); err != nil {
		return nil, err
	}

	router := NewRouter(cfg, logger, jwtMaker, Services{
		Auth:         authService,
		User:         userService,
		Category:     categoryService,
		Subscription: subscriptionService,
		Dashboard:    dashboardService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. Остановка по контексту выполняется мягко.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.rabbitCh.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", closeErr))
		}
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
