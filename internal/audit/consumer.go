package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/IWhitebird/go-leader-board/config"
	"github.com/IWhitebird/go-leader-board/internal/logging"
)

// BatchSaver persists a batch of events; satisfied by
// *internal/db.AuditRepository in production and a fake in tests.
type BatchSaver interface {
	SaveBatch(ctx context.Context, events []ScoreUpdatedEvent) error
}

// Consumer drains the audit topic in small batches and hands them to a
// BatchSaver. It never feeds events back into the leaderboard core.
type Consumer struct {
	reader  *kafka.Reader
	saver   BatchSaver
	batch   int
	timeout time.Duration
}

// NewConsumer dials the configured brokers. Like Producer, a dial failure
// degrades to a disabled consumer instead of blocking startup.
func NewConsumer(cfg *config.AppConfig, saver BatchSaver) *Consumer {
	c := &Consumer{
		saver:   saver,
		batch:   cfg.Kafka.BatchSize,
		timeout: time.Duration(cfg.Kafka.BatchTimeout) * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := kafka.DialContext(ctx, "tcp", cfg.Kafka.Brokers[0])
	if err != nil {
		logging.Error(fmt.Sprintf("audit consumer: could not reach kafka brokers, audit trail disabled: %v", err))
		return c
	}
	conn.Close()

	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.ScoresTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
		StartOffset:    kafka.LastOffset,
	})
	return c
}

// Run drains messages until ctx is cancelled. A nil reader (disabled
// consumer) returns immediately.
func (c *Consumer) Run(ctx context.Context) {
	if c.reader == nil {
		return
	}

	go func() {
		defer c.reader.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.drainBatch(ctx); err != nil && ctx.Err() == nil {
					logging.Error(fmt.Sprintf("audit consumer: %v", err))
					time.Sleep(2 * time.Second)
				}
			}
		}
	}()
}

func (c *Consumer) drainBatch(ctx context.Context) error {
	batchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	events := make([]ScoreUpdatedEvent, 0, c.batch)
	for len(events) < c.batch {
		msg, err := c.reader.FetchMessage(batchCtx)
		if err != nil {
			break
		}

		var ev ScoreUpdatedEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			logging.Error(fmt.Sprintf("audit consumer: malformed event, skipping: %v", err))
			c.reader.CommitMessages(ctx, msg)
			continue
		}

		events = append(events, ev)
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("committing message: %w", err)
		}
	}

	if len(events) == 0 {
		return nil
	}
	return c.saver.SaveBatch(ctx, events)
}

// Close releases the underlying Kafka reader, if any.
func (c *Consumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
