package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSaver struct {
	mu     sync.Mutex
	events []ScoreUpdatedEvent
}

func (f *fakeSaver) SaveBatch(ctx context.Context, events []ScoreUpdatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	return nil
}

// TestConsumerWithDisabledReaderIsNoop verifies that a Consumer built
// without a reachable Kafka broker (disabled reader) never panics when run
// and closed, matching Producer's fail-soft contract.
func TestConsumerWithDisabledReaderIsNoop(t *testing.T) {
	saver := &fakeSaver{}
	c := &Consumer{saver: saver, batch: 10}

	ctx, cancel := context.WithCancel(context.Background())
	c.Run(ctx)
	cancel()

	assert.NoError(t, c.Close())
	assert.Empty(t, saver.events)
}
