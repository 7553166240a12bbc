// Package viewport keeps the caret row on screen.
package viewport

// DefaultScrollOff is the number of rows kept visible above and below the caret.
const DefaultScrollOff = 2

// Manager tracks the first visible row of the laid-out document.
type Manager struct {
	top       int
	height    int
	scrollOff int
}

func NewManager(scrollOff int) *Manager {
	if scrollOff < 0 {
		scrollOff = 0
	}
	return &Manager{scrollOff: scrollOff}
}

// SetHeight updates the number of rows available for text.
func (m *Manager) SetHeight(height int) {
	m.height = height
}

// Top returns the first visible row.
func (m *Manager) Top() int { return m.top }

// Follow scrolls so that row stays visible with scroll-off margin, and
// returns the new top row.
func (m *Manager) Follow(row int) int {
	if m.height <= 0 {
		// View not initialized yet
		return m.top
	}
	off := min(m.scrollOff, (m.height-1)/2)

	if row < m.top+off {
		m.top = row - off
	} else if row >= m.top+m.height-off {
		m.top = row - m.height + off + 1
	}
	if m.top < 0 {
		m.top = 0
	}
	return m.top
}
