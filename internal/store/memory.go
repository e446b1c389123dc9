package store

import (
	"context"
	"sync"
	"time"

	"RiskSentinel/internal/model"
)

// MemoryStore is an in-process fallback used when SQLite cannot be
// opened. It starts pre-seeded so the API stays usable; everything is
// lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	portfolios map[int64]model.Portfolio
	snapshots  map[int64][]RiskSnapshot
}

// NewMemoryStore creates a seeded in-memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		nextID:     1,
		portfolios: make(map[int64]model.Portfolio),
		snapshots:  make(map[int64][]RiskSnapshot),
	}
	for _, p := range SeedPortfolios {
		s.CreatePortfolio(context.Background(), p)
	}
	return s
}

func (s *MemoryStore) ListPortfolios(_ context.Context) ([]model.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Portfolio, 0, len(s.portfolios))
	for id := int64(1); id < s.nextID; id++ {
		if p, ok := s.portfolios[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetPortfolio(_ context.Context, id int64) (model.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.portfolios[id]
	if !ok {
		return model.Portfolio{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) CreatePortfolio(_ context.Context, p model.Portfolio) (model.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	s.portfolios[p.ID] = p
	return p, nil
}

func (s *MemoryStore) DeletePortfolio(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.portfolios[id]; !ok {
		return ErrNotFound
	}
	delete(s.portfolios, id)
	delete(s.snapshots, id)
	return nil
}

func (s *MemoryStore) SaveRiskSnapshot(_ context.Context, snap RiskSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	snap.ID = int64(len(s.snapshots[snap.PortfolioID]) + 1)
	s.snapshots[snap.PortfolioID] = append(s.snapshots[snap.PortfolioID], snap)
	return nil
}

func (s *MemoryStore) RecentSnapshots(_ context.Context, portfolioID int64, limit int) ([]RiskSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 30
	}
	all := s.snapshots[portfolioID]
	out := make([]RiskSnapshot, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
