package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes envelopes to one topic per event type, keyed by order
// id so a single order's events stay on one partition.
type KafkaPublisher struct {
	w        *kafka.Writer
	producer string
}

func NewKafkaPublisher(brokers []string, producer string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			ErrorLogger:  kafka.LoggerFunc(log.Printf),
		},
		producer: producer,
	}
}

func (p *KafkaPublisher) Publish(topic, key string, payload any) {
	env, err := newEnvelope(topic, p.producer, payload)
	if err != nil {
		log.Printf("events: marshal %s: %v", topic, err)
		return
	}
	value, _ := json.Marshal(env)
	// Async writer: WriteMessages only enqueues, failures go to ErrorLogger.
	_ = p.w.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
