// Package history provides undo/redo over whole document snapshots.
package history

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
)

const DefaultMaxHistory = 100

// Manager handles the undo/redo stack. Each entry is the snapshot that was
// current before a change, so undoing is a plain swap.
type Manager struct {
	undo       []document.Snapshot
	redo       []document.Snapshot
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager holding at most maxHistory undo steps.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		undo:       make([]document.Snapshot, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Record stores before as an undo step, clearing any redo history.
func (m *Manager) Record(before document.Snapshot) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.undo = append(m.undo, before)
	if len(m.undo) > m.maxHistory {
		// Oldest step falls off.
		m.undo = m.undo[len(m.undo)-m.maxHistory:]
	}
	m.redo = m.redo[:0]

	logger.DebugTagf("history", "Recorded step. Undo: %d", len(m.undo))
}

// Undo returns the snapshot to restore in place of current. ok is false when
// there is nothing to undo.
func (m *Manager) Undo(current document.Snapshot) (document.Snapshot, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.undo) == 0 {
		logger.Debugf("History: Nothing to undo.")
		return current, false
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current)

	logger.DebugTagf("history", "Undo. Undo: %d, Redo: %d", len(m.undo), len(m.redo))
	return prev, true
}

// Redo reapplies the last undone snapshot.
func (m *Manager) Redo(current document.Snapshot) (document.Snapshot, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.redo) == 0 {
		logger.Debugf("History: Nothing to redo.")
		return current, false
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, current)

	logger.DebugTagf("history", "Redo. Undo: %d, Redo: %d", len(m.undo), len(m.redo))
	return next, true
}

func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo) > 0
}

// Clear drops all history.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}
