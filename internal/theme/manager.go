package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager holds loaded themes and manages the active theme. Themes loaded
// from files are laid over the built-in theme, so a file only needs the
// styles it changes.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	mutex       sync.RWMutex
}

// NewManager creates a manager holding the built-in theme.
func NewManager() *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.themes[strings.ToLower(TidemarkDark.Name)] = TidemarkDark
	m.activeTheme = TidemarkDark
	return m
}

// LoadFile loads a theme file, registers it and makes it active.
func (m *Manager) LoadFile(path string) error {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return err
	}
	merged := TidemarkDark.merge(t)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.themes[strings.ToLower(merged.Name)] = merged
	m.activeTheme = merged
	logger.Infof("Active theme set to: %s", merged.Name)
	return nil
}

// LoadThemesFromDir registers every .toml theme in dir. A missing directory
// is not an error.
func (m *Manager) LoadThemesFromDir(dir string) error {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist. No custom themes loaded.", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(dir, file.Name())
		t, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue // Skip problematic file
		}

		m.mutex.Lock()
		nameLower := strings.ToLower(t.Name)
		if existing, ok := m.themes[nameLower]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", t.Name, filePath, existing.Name)
		}
		m.themes[nameLower] = TidemarkDark.merge(t)
		m.mutex.Unlock()
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes from %s.", loadedCount, dir)
	return nil
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
