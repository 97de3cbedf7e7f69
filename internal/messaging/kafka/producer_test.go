package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

func testOrder() domain.Order {
	return domain.Order{
		ID:         "order-123",
		TotalMinor: 15000,
		Items: []domain.OrderItem{
			{Name: "Latte", Qty: 2},
			{Name: "Tea", Qty: 1},
		},
		CreatedAt: time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestProducerPublishOrderCreated(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		var event OrderCreatedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeOrderCreated {
			t.Errorf("event type = %q, want %q", event.EventType, EventTypeOrderCreated)
		}
		if event.OrderID != "order-123" || event.TotalMinor != 15000 || event.ItemCount != 2 {
			t.Errorf("unexpected event payload: %+v", event)
		}
		return nil
	})

	if err := producer.PublishOrderCreated(testOrder()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducerPublishOrderCreated_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.PublishOrderCreated(testOrder()); err == nil {
		t.Fatal("expected publish error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
