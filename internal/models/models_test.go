package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLessHigherScoreFirst(t *testing.T) {
	a := &Participant{ID: 1, Score: decimal.NewFromInt(10)}
	b := &Participant{ID: 2, Score: decimal.NewFromInt(20)}

	assert.True(t, Less(b, a))
	assert.False(t, Less(a, b))
}

func TestLessTieBreaksBySmallerID(t *testing.T) {
	a := &Participant{ID: 1, Score: decimal.NewFromInt(10)}
	b := &Participant{ID: 2, Score: decimal.NewFromInt(10)}

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
}

func TestLockUnlockSerializes(t *testing.T) {
	p := &Participant{ID: 1, Score: decimal.Zero}
	p.Lock()

	acquired := make(chan struct{})
	go func() {
		p.Lock()
		close(acquired)
		p.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock acquired while the first was still held")
	case <-time.After(20 * time.Millisecond):
	}

	p.Unlock()
	<-acquired
}
