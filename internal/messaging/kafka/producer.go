// Package kafka публикует события о продажах для внешних потребителей
// (аналитика, выгрузки). Публикация опциональна и не участвует в checkout:
// потерянное событие — это потерянное событие, продажа уже записана.
package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// TopicOrderEvents — топик событий о созданных заказах.
const TopicOrderEvents = "pos.order.events"

// EventTypeOrderCreated — единственный тип события POS: продажа записана.
const EventTypeOrderCreated = "order.created"

// OrderCreatedEvent — полезная нагрузка события о продаже.
type OrderCreatedEvent struct {
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	TotalMinor int64     `json:"total_minor"`
	ItemCount  int       `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Producer публикует события POS в Kafka.
type Producer struct {
	producer sarama.SyncProducer
	logger   *log.Entry
}

// NewProducer создаёт синхронный идемпотентный producer.
func NewProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		logger:   log.WithField("component", "kafka-producer"),
	}, nil
}

// PublishOrderCreated публикует событие о записанной продаже.
func (p *Producer) PublishOrderCreated(order domain.Order) error {
	event := OrderCreatedEvent{
		EventType:  EventTypeOrderCreated,
		OrderID:    order.ID,
		TotalMinor: order.TotalMinor,
		ItemCount:  len(order.Items),
		CreatedAt:  order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     TopicOrderEvents,
		Key:       sarama.StringEncoder(order.ID),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithField("order_id", order.ID).Error("failed to send order event")
		return fmt.Errorf("send order event: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"order_id":  order.ID,
		"partition": partition,
		"offset":    offset,
	}).Debug("order event sent")

	return nil
}

// Close закрывает producer.
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}

var _ domain.EventPublisher = (*Producer)(nil)
