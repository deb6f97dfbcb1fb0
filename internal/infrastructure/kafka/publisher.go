package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/segmentio/kafka-go"
)

type PaymentPublisher struct {
	writer *kafka.Writer
}

func NewPaymentPublisher(brokers []string, topic string) *PaymentPublisher {
	return &PaymentPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *PaymentPublisher) PublishPayment(event domain.PaymentEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: msg,
		Time:  time.Now(),
	})
}
