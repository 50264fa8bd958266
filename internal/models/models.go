// Package models holds the shared domain types for the leaderboard core:
// the participant record, its ordering key, and the DTOs handed back
// across the external interface boundary.
package models

import (
	"sync"

	"github.com/shopspring/decimal"
)

// MinDelta and MaxDelta bound a single updateScore call.
var (
	MinDelta = decimal.NewFromInt(-1000)
	MaxDelta = decimal.NewFromInt(1000)
)

// Participant is identified by a positive, immutable id and carries a
// mutable decimal score. Participant.Score must only be mutated while the
// participant is not linked into the index.
type Participant struct {
	ID int64
	// mu serializes the remove/mutate/add sequence a single updateScore
	// call performs on this participant — it does not protect Score
	// against readers traversing the board mid-sequence, which is the
	// documented split-phase anomaly (see DESIGN.md).
	mu    sync.Mutex
	Score decimal.Decimal
}

// Lock/Unlock expose the participant's compound-update lock to the
// leaderboard service without leaking the sync primitive itself.
func (p *Participant) Lock()   { p.mu.Lock() }
func (p *Participant) Unlock() { p.mu.Unlock() }

// Less implements the composite (-score, +id) order: higher
// score first, ties broken by the smaller id.
func Less(a, b *Participant) bool {
	if !a.Score.Equal(b.Score) {
		return a.Score.GreaterThan(b.Score)
	}
	return a.ID < b.ID
}

// Entry is a dense-ranked leaderboard row as returned by getLeaderboard and
// getCustomerWithNeighbors.
type Entry struct {
	CustomerID int64           `json:"customerId"`
	Score      decimal.Decimal `json:"score"`
	Rank       int32           `json:"rank"`
}
