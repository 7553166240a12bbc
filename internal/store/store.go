// Package store holds the current document snapshot and persists every
// snapshot it adopts.
package store

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Persistence is what the store needs from the persistence layer.
type Persistence interface {
	Load() (document.Snapshot, bool)
	Save(document.Snapshot) error
}

// State is the store lifecycle state.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "Ready"
	}
	return "Uninitialized"
}

// Store owns the single shared snapshot reference. The snapshot is never
// mutated, only swapped, so readers always see a complete document.
type Store struct {
	mu      sync.RWMutex
	current document.Snapshot
	state   State

	persistence Persistence
	events      *event.Manager
}

// Option configures a Store.
type Option func(*Store)

// WithEvents makes the store dispatch change and save events on m.
func WithEvents(m *event.Manager) Option {
	return func(s *Store) { s.events = m }
}

// New builds a Ready store seeded from p.Load(), or from an empty document
// when nothing usable is stored.
func New(p Persistence, opts ...Option) *Store {
	s := &Store{persistence: p}
	for _, opt := range opts {
		opt(s)
	}

	snap, fromStorage := document.Empty(), false
	if p != nil {
		snap, fromStorage = p.Load()
	}

	s.mu.Lock()
	s.current = snap
	s.state = Ready
	s.mu.Unlock()

	logger.Infof("Store: ready with %d block(s), restored=%v", snap.Len(), fromStorage)
	s.events.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{
		FromStorage: fromStorage,
		Blocks:      snap.Len(),
	})
	return s
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns the snapshot held right now.
func (s *Store) Current() document.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in next and then saves it exactly once before returning.
// A save error is returned but the new snapshot stays in place.
func (s *Store) Replace(next document.Snapshot) error {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	logger.DebugTagf("store", "Snapshot replaced (%d block(s))", next.Len())
	s.events.Dispatch(event.TypeSnapshotReplaced, event.SnapshotReplacedData{Snapshot: next})
	return s.save(next)
}

// Save persists the current snapshot on demand.
func (s *Store) Save() error {
	return s.save(s.Current())
}

func (s *Store) save(snap document.Snapshot) error {
	if s.persistence == nil {
		return nil
	}
	if err := s.persistence.Save(snap); err != nil {
		logger.Errorf("Store: save failed, keeping in-memory document: %v", err)
		s.events.Dispatch(event.TypeSaveFailed, event.SaveFailedData{Err: err})
		return fmt.Errorf("store save: %w", err)
	}
	s.events.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{Blocks: snap.Len()})
	return nil
}
