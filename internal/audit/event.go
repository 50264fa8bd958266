// Package audit streams score-update events to Kafka and drains them into
// a PostgreSQL audit trail. Neither direction feeds back into the core
// leaderboard state: the board is never rebuilt from Kafka or Postgres, so
// this stays a one-way observability pipe and never reintroduces crash
// recovery into the leaderboard core.
package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScoreUpdatedEvent is published after every successful UpdateScore call.
type ScoreUpdatedEvent struct {
	CustomerID int64           `json:"customerId"`
	Delta      decimal.Decimal `json:"delta"`
	NewScore   decimal.Decimal `json:"newScore"`
	RecordedAt time.Time       `json:"recordedAt"`
}
