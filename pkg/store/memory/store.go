package memory

import (
	"context"
	"sync"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

// Store keeps reporting items in process memory, in insertion order. It is
// safe for concurrent use and mainly serves tests and local runs.
type Store struct {
	mu    sync.RWMutex
	items []domain.ReportingItem
}

func New() *Store {
	return &Store{}
}

// Factory adapts New to the backend registry.
func Factory(_ backend.Config) (backend.Store, error) {
	return New(), nil
}

func (s *Store) StoreItem(_ context.Context, item domain.ReportingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

func (s *Store) ForEachItem(ctx context.Context, f backend.Filter, fn func(domain.ReportingItem) error) error {
	s.mu.RLock()
	snapshot := make([]domain.ReportingItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.RUnlock()

	for _, item := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !f.Matches(item) {
			continue
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
