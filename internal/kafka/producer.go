package kafka

import (
	"context"
	"encoding/json" // Для маршалинга данных в JSON
	"errors"        // Для проверки ошибок
	"fmt"
	"time" // Для таймаутов

	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go" // Библиотека Kafka
)

// Типы событий по счетам
const (
	EventInvoiceCreated = "invoice.created"
	EventInvoiceUpdated = "invoice.updated"
	EventInvoiceDeleted = "invoice.deleted"
)

// InvoiceEvent событие об изменении счета
type InvoiceEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	InvoiceID  string    `json:"invoice_id,omitempty"` // пусто для созданных: ID присваивает база
	CustomerID string    `json:"customer_id,omitempty"`
	Amount     int64     `json:"amount,omitempty"` // в центах
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewInvoiceEvent создает событие с новым ID
func NewInvoiceEvent(eventType string, occurredAt time.Time) InvoiceEvent {
	return InvoiceEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt,
	}
}

// Producer определяет интерфейс для публикации сообщений в Kafka.
type Producer interface {
	// PublishInvoiceEvent отправляет событие по счету.
	PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) error
	// Close закрывает соединение продюсера Kafka.
	Close() error
}

// messageWriter часть kafka.Writer, которой пользуется продюсер
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaProducer реализует интерфейс Producer, используя segmentio/kafka-go.
type kafkaProducer struct {
	writer messageWriter
	topic  string
	log    *logger.Logger
}

// NewKafkaProducer создает и настраивает новый продюсер Kafka.
func NewKafkaProducer(brokers []string, topic string, log *logger.Logger) (Producer, error) {
	// Проверяем, что список брокеров не пуст
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...), // Подключаемся к списку брокеров
		Balancer:     &kafka.LeastBytes{},   // Балансировщик нагрузки
		RequiredAcks: kafka.RequireOne,      // Уровень подтверждения записи
		BatchSize:    100,                   // Размер пакета сообщений
		BatchTimeout: 10 * time.Millisecond, // Таймаут для накопления пакета
		WriteTimeout: 10 * time.Second,      // Таймаут на операцию записи
		ReadTimeout:  10 * time.Second,      // Таймаут на операцию чтения (для RequiredAcks > 0)
	}

	log.Infow("Kafka producer initialized", "brokers", brokers, "topic", topic)

	return &kafkaProducer{
		writer: writer,
		topic:  topic,
		log:    log,
	}, nil
}

// PublishInvoiceEvent преобразует событие в JSON и отправляет в топик Kafka.
func (k *kafkaProducer) PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) error {
	// Ключ: ID счета, чтобы события одного счета попадали в одну партицию.
	// У созданного счета ID еще нет, тогда ключом служит ID события.
	key := event.InvoiceID
	if key == "" {
		key = event.ID
	}

	messageValue, err := json.Marshal(event)
	if err != nil {
		k.log.Errorw("Failed to marshal invoice event to JSON for Kafka", "error", err, "eventID", event.ID)
		return fmt.Errorf("kafka: failed to marshal message data: %w", err)
	}

	message := kafka.Message{
		Topic: k.topic,
		Key:   []byte(key),
		Value: messageValue,
		Time:  event.OccurredAt,
	}

	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second) // Таймаут на запись
	defer cancel()

	err = k.writer.WriteMessages(writeCtx, message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			k.log.Errorw("Kafka write timeout exceeded", "error", err, "topic", k.topic, "eventID", event.ID)
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		k.log.Errorw("Failed to write message to Kafka", "error", err, "topic", k.topic, "eventID", event.ID)
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Debugw("Published invoice event", "topic", k.topic, "type", event.Type, "key", key)
	return nil
}

// Close закрывает соединение Kafka Writer.
func (k *kafkaProducer) Close() error {
	k.log.Infow("Closing Kafka producer writer...")
	if err := k.writer.Close(); err != nil {
		k.log.Errorw("Failed to close Kafka writer", "error", err)
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	return nil
}

// NoOpProducer используется, когда брокеры не настроены
type NoOpProducer struct{}

func (NoOpProducer) PublishInvoiceEvent(context.Context, InvoiceEvent) error { return nil }

func (NoOpProducer) Close() error { return nil }
