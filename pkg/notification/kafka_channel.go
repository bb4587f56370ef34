package notification

import (
	"Aahar-Backend/domain"
	"context"
	"encoding/json"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaChannel publishes every event keyed by donation id, so one
// donation's events stay ordered within a partition.
type KafkaChannel struct {
	writer messageWriter
}

func NewKafkaChannel(brokers []string, topic string) *KafkaChannel {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.Hash{}})
	return &KafkaChannel{writer: w}
}

func (k *KafkaChannel) Name() string {
	return "kafka"
}

func (k *KafkaChannel) Send(ctx context.Context, event domain.NotificationEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.DonationID),
		Value:   b,
		Headers: []kafka.Header{{Key: "type", Value: []byte(event.Type)}},
	})
}

func (k *KafkaChannel) Close() error {
	if k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
