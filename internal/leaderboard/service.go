// Package leaderboard implements the leaderboard service (LS): it binds an
// id -> participant map to an indexed ordered set under a
// single-writer/multi-reader discipline.
package leaderboard

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/IWhitebird/go-leader-board/internal/apperr"
	"github.com/IWhitebird/go-leader-board/internal/models"
	"github.com/IWhitebird/go-leader-board/internal/skiplist"
)

// UpdateListener is called synchronously after every successful UpdateScore
// call, before UpdateScore returns. It exists so ambient concerns (audit
// streaming) can observe score changes without the core depending on them.
type UpdateListener func(id int64, delta, newScore decimal.Decimal)

// Service owns the participant map and the score-ordered index.
type Service struct {
	mu           sync.RWMutex // guards participants only; board has its own lock
	participants map[int64]*models.Participant
	board        *skiplist.List[*models.Participant]

	listenersMu sync.RWMutex
	listeners   []UpdateListener
}

// New creates an empty leaderboard service.
func New() *Service {
	return &Service{
		participants: make(map[int64]*models.Participant),
		board:        skiplist.New[*models.Participant](models.Less),
	}
}

// OnUpdate registers a listener invoked after each successful UpdateScore.
func (s *Service) OnUpdate(fn UpdateListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Service) notify(id int64, delta, newScore decimal.Decimal) {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()
	for _, fn := range s.listeners {
		fn(id, delta, newScore)
	}
}

func (s *Service) getOrCreate(id int64) *models.Participant {
	s.mu.RLock()
	p, ok := s.participants[id]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.participants[id]; ok {
		return p
	}
	p = &models.Participant{ID: id, Score: decimal.Zero}
	s.participants[id] = p
	return p
}

// UpdateScore applies delta to the participant's score and returns the
// resulting score. It creates the participant on first touch with an
// initial score of zero, not yet present in the board.
//
// The remove/mutate/add sequence takes the participant's own lock for the
// duration of the compound update, so concurrent UpdateScore calls for the
// SAME id never interleave their remove/add pairs. The board's write lock
// is still acquired and released separately for the remove and the add —
// reproducing, as a documented anomaly rather than an oversight, a race
// where a reader can observe the participant briefly absent from the
// board between the two steps even though its pending score is positive.
func (s *Service) UpdateScore(id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if id <= 0 {
		return decimal.Zero, apperr.InvalidArgument("id must be positive, got %d", id)
	}
	if delta.LessThan(models.MinDelta) || delta.GreaterThan(models.MaxDelta) {
		return decimal.Zero, apperr.InvalidArgument("delta %s outside allowed range [-1000, 1000]", delta)
	}

	p := s.getOrCreate(id)

	p.Lock()
	defer p.Unlock()

	if p.Score.GreaterThan(decimal.Zero) {
		if _, err := s.board.Remove(p); err != nil {
			return decimal.Zero, apperr.Internal("removing participant %d from board: %v", id, err)
		}
	}

	p.Score = p.Score.Add(delta)

	if p.Score.GreaterThan(decimal.Zero) {
		if err := s.board.Add(p); err != nil {
			return decimal.Zero, apperr.Internal("adding participant %d to board: %v", id, err)
		}
	}

	newScore := p.Score
	s.notify(id, delta, newScore)
	return newScore, nil
}

// entriesFrom snapshots each participant's score under its own lock: the
// board's read lock (held by the caller's GetRange call) is already
// released by the time this runs, and UpdateScore mutates Score while
// holding only the participant's lock, not the board's — so reading Score
// here without taking the same lock would race with a concurrent update.
func entriesFrom(participants []*models.Participant, firstRank int32) []models.Entry {
	entries := make([]models.Entry, 0, len(participants))
	for i, p := range participants {
		p.Lock()
		score := p.Score
		p.Unlock()
		entries = append(entries, models.Entry{
			CustomerID: p.ID,
			Score:      score,
			Rank:       firstRank + int32(i),
		})
	}
	return entries
}

// GetLeaderboard returns the dense rank window [start..end] (1-based,
// inclusive). Returns an empty slice, never an error, when start is past
// the end of the board or the board is empty.
func (s *Service) GetLeaderboard(start, end int32) ([]models.Entry, error) {
	if start < 1 {
		return nil, apperr.InvalidArgument("start must be >= 1, got %d", start)
	}
	if end < start {
		return nil, apperr.InvalidArgument("end (%d) must be >= start (%d)", end, start)
	}

	if int(start) > s.board.Len() {
		return []models.Entry{}, nil
	}

	count := int(end-start) + 1
	window := s.board.GetRange(int(start)-1, count)
	return entriesFrom(window, start), nil
}

// GetCustomerWithNeighbors returns the dense-ranked window around id:
// up to high positions above it (toward rank 1) and low positions below
// it, clamped to the board's bounds.
func (s *Service) GetCustomerWithNeighbors(id int64, high, low int32) ([]models.Entry, error) {
	if id <= 0 {
		return nil, apperr.InvalidArgument("id must be positive, got %d", id)
	}
	if high < 0 {
		return nil, apperr.InvalidArgument("high must be >= 0, got %d", high)
	}
	if low < 0 {
		return nil, apperr.InvalidArgument("low must be >= 0, got %d", low)
	}

	s.mu.RLock()
	p, ok := s.participants[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperr.NotFound("customer %d is not on the board", id)
	}

	p.Lock()
	positive := p.Score.GreaterThan(decimal.Zero)
	p.Unlock()
	if !positive {
		return nil, apperr.NotFound("customer %d is not on the board", id)
	}

	rank, err := s.board.GetRank(p)
	if err != nil {
		return nil, apperr.Internal("ranking customer %d: %v", id, err)
	}
	if rank == -1 {
		return nil, apperr.NotFound("customer %d is not on the board", id)
	}

	lo := rank - int(high)
	if lo < 1 {
		lo = 1
	}
	hi := rank + int(low)
	if hi > s.board.Len() {
		hi = s.board.Len()
	}

	count := hi - lo + 1
	window := s.board.GetRange(lo-1, count)
	return entriesFrom(window, int32(lo)), nil
}

// Clear empties both the board and the participant map.
func (s *Service) Clear() {
	s.mu.Lock()
	s.participants = make(map[int64]*models.Participant)
	s.mu.Unlock()
	s.board.Clear()
}

// BoardSize returns the number of participants currently on the board.
func (s *Service) BoardSize() int {
	return s.board.Len()
}
