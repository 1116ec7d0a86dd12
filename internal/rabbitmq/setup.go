package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// NotificationsExchange — exchange для всех почтовых уведомлений.
	NotificationsExchange = "notifications"
	// EmailQueue — очередь исходящих писем (welcome, password reset).
	EmailQueue = "notifications.email"
	// EmailRoutingKey — ключ маршрутизации почтовых сообщений.
	EmailRoutingKey = "email"
)

// SetupChannel открывает канал и объявляет exchange и очередь уведомлений.
// Объявления идемпотентны, поэтому обе стороны (publisher и consumer)
// вызывают SetupChannel при старте.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		NotificationsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		EmailQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.QueueBind(EmailQueue, EmailRoutingKey, NotificationsExchange, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
