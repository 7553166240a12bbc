// Package clipboard copies and pastes plain text for the editor, through the
// system clipboard when one is available and an internal register otherwise.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager handles clipboard operations.
type Manager struct {
	useSystem bool
	register  string
	mutex     sync.Mutex
}

// NewManager creates a clipboard manager. With useSystem false, or when the
// platform has no clipboard utility, only the internal register is used.
func NewManager(useSystem bool) *Manager {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Manager{useSystem: useSystem}
}

// UsesSystem reports whether copies reach the system clipboard.
func (m *Manager) UsesSystem() bool { return m.useSystem }

// Copy stores text in the register and, if enabled, the system clipboard.
// The register keeps the text even when the system write fails.
func (m *Manager) Copy(text string) error {
	m.mutex.Lock()
	m.register = text
	m.mutex.Unlock()

	if !m.useSystem {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	logger.Debugf("Clipboard: copied %d bytes to system clipboard", len(text))
	return nil
}

// Paste returns the system clipboard text, falling back to the register.
func (m *Manager) Paste() string {
	if m.useSystem {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text
		}
		logger.Warnf("Clipboard: system read failed, using register: %v", err)
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.register
}
