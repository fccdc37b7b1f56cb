// Package events publishes store change notifications to Kafka for downstream
// consumers (abandoned-cart jobs, analytics). Publishing is best-effort and
// never blocks a store mutation.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"stylehub/internal/store"
)

const EventStoreUpdated = "store.updated"

const publishTimeout = 5 * time.Second

type Publisher struct {
	writer *kafka.Writer
	logger *log.Logger
}

func NewPublisher(brokers []string, topic string, logger *log.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
		logger: logger,
	}
}

// StoreChanged emits one message per state change, keyed by session so all
// events for a shopper land on the same partition. Safe to call from a store
// subscriber: the write happens on its own goroutine.
func (p *Publisher) StoreChanged(sessionID string, st store.State) {
	payload, err := json.Marshal(st)
	if err != nil {
		p.logger.Printf("marshal store event: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(sessionID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventStoreUpdated)},
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Printf("publish store event for session %s: %v", sessionID, err)
		}
	}()
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
