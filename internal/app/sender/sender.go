// Package sender собирает воркер отправки почтовых уведомлений:
// подключение к RabbitMQ, SMTP-транспорт и сервис обработки сообщений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/naimbob95/ImbaSubVault/internal/config"
	"github.com/naimbob95/ImbaSubVault/internal/lib/mailer"
	"github.com/naimbob95/ImbaSubVault/internal/rabbitmq"
	senderservice "github.com/naimbob95/ImbaSubVault/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	smtpMailer := mailer.New(cfg.Email)
	senderService := senderservice.NewSenderService(smtpMailer, cfg.FrontendURL, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди уведомлений и блокируется до
// остановки контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.EmailQueue, a.senderService.HandleMessage)
	if err != nil {
		a.logger.Error("failed to start email queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
