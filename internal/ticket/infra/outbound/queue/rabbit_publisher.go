// Package queue contiene los adaptadores del canal de notificaciones.
// La entrega es at-most-once: el orquestador no reintenta ni deshace
// nada si el publish falla.
package queue

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
)

// RabbitPublisher publica el mensaje de confirmación en una cola durable
// de RabbitMQ. Los mensajes se marcan como persistentes para sobrevivir
// reinicios del broker.
type RabbitPublisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	log       *zap.Logger
}

// NewRabbitPublisher abre conexión y canal, y declara la cola (idempotente).
func NewRabbitPublisher(url, queueName string, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	return &RabbitPublisher{
		conn:      conn,
		channel:   ch,
		queueName: queueName,
		log:       log,
	}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, message string) error {
	pub := amqp.Publishing{
		ContentType:  "text/plain",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         []byte(message),
	}

	err := p.channel.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	)
	if err != nil {
		p.log.Error("Error publishing to RabbitMQ", zap.String("queue", p.queueName), zap.Error(err))
		return err
	}

	p.log.Debug("Notification published", zap.String("queue", p.queueName))
	return nil
}

// Close libera canal y conexión.
func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Verificación estática
var _ ticketDomain.NotificationPublisher = (*RabbitPublisher)(nil)
