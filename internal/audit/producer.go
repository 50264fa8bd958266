package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/IWhitebird/go-leader-board/config"
	"github.com/IWhitebird/go-leader-board/internal/logging"
)

// Producer publishes ScoreUpdatedEvent messages to the audit topic. It is
// built to fail soft: if Kafka is unreachable at construction time the
// service still starts, the failure is logged once by NewProducer, and
// Publish becomes a silent no-op.
type Producer struct {
	mu        sync.Mutex
	writer    *kafka.Writer
	topic     string
	connected bool
}

// NewProducer dials the configured Kafka brokers. A dial failure is
// logged and yields a disconnected Producer rather than an error, so a
// missing audit pipeline never blocks the leaderboard API from starting.
func NewProducer(cfg *config.AppConfig) *Producer {
	p := &Producer{topic: cfg.Kafka.ScoresTopic}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Kafka.Brokers[0])
	if err != nil {
		logging.Error(fmt.Sprintf("audit producer: could not reach kafka brokers, audit stream disabled: %v", err))
		return p
	}
	conn.Close()

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.ScoresTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    1,
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	p.connected = true
	return p
}

// Publish sends ev, fire-and-forget relative to the caller: failures are
// logged, never propagated, since the audit stream is not part of the
// core's correctness contract.
func (p *Producer) Publish(ev ScoreUpdatedEvent) {
	p.mu.Lock()
	connected := p.connected
	p.mu.Unlock()
	if !connected {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		logging.Error(fmt.Sprintf("audit producer: marshal event for customer %d: %v", ev.CustomerID, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", ev.CustomerID)),
		Value: body,
		Time:  ev.RecordedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logging.Error(fmt.Sprintf("audit producer: publish event for customer %d: %v", ev.CustomerID, err))
	}
}

// Close releases the underlying Kafka writer, if connected.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		p.connected = false
		return p.writer.Close()
	}
	return nil
}
