package pivotchart

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store holds the named datasets loaded at startup. It is filled once by
// LoadStore and only read afterwards.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewStore returns a store over already loaded datasets.
func NewStore(datasets map[string]*Dataset) *Store {
	s := &Store{datasets: make(map[string]*Dataset, len(datasets))}
	for name, ds := range datasets {
		s.datasets[name] = ds
	}

	return s
}

// LoadStore loads tables from repo concurrently.
func LoadStore(ctx context.Context, repo ReadRepository, tables ...string) (*Store, error) {
	loaded := make([]*Dataset, len(tables))

	g, ctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			ds, err := repo.Load(ctx, table)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", table, err)
			}
			loaded[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	datasets := make(map[string]*Dataset, len(tables))
	for i, table := range tables {
		datasets[table] = loaded[i]
	}

	return NewStore(datasets), nil
}

// Dataset returns the named dataset.
func (s *Store) Dataset(name string) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.datasets[name]
	return ds, ok
}

// Replace swaps the named dataset, e.g. after joining in extra columns.
func (s *Store) Replace(name string, ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasets[name] = ds
}
