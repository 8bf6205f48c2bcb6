package queue

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
)

// KafkaPublisher es el backend alternativo del canal de notificaciones:
// mismo puerto, un topic en lugar de una cola.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, message string) error {
	msg := kafka.Message{
		Value: []byte(message),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error publishing to Kafka", zap.Error(err))
		return err
	}

	p.log.Debug("Notification published", zap.String("topic", p.writer.Topic))
	return nil
}

// Verificación estática
var _ ticketDomain.NotificationPublisher = (*KafkaPublisher)(nil)
