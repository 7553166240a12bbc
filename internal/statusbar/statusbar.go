// Package statusbar draws the single status line under the editing canvas.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behavior of the status bar. Colors come from the theme.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: 4 * time.Second}
}

// MessageKind selects the style of a temporary message.
type MessageKind int

const (
	KindInfo MessageKind = iota
	KindSaved
	KindError
)

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	location   string // storage backend and key
	blockType  string
	blockIndex int
	blockCount int
	offset     int
	saveFailed bool

	tempMessage     string
	tempKind        MessageKind
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetLocation sets where the document is stored, e.g. "file:editorContent".
func (sb *StatusBar) SetLocation(location string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.location = location
}

// SetCaretInfo updates the caret block and offset shown.
func (sb *StatusBar) SetCaretInfo(blockType string, index, count, offset int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.blockType = blockType
	sb.blockIndex = index
	sb.blockCount = count
	sb.offset = offset
}

// SetSaveFailed marks the document as not persisted until the next good save.
func (sb *StatusBar) SetSaveFailed(failed bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.saveFailed = failed
}

// SetTemporaryMessage displays an info message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(KindInfo, format, args...)
}

// SetMessage displays a message of the given kind.
func (sb *StatusBar) SetMessage(kind MessageKind, format string, args ...interface{}) {
	sb.setMessage(kind, format, args...)
}

func (sb *StatusBar) setMessage(kind MessageKind, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempKind = kind
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// getDefaultDisplayText builds the default status line text. Caller holds the lock.
func (sb *StatusBar) getDefaultDisplayText() string {
	location := sb.location
	if location == "" {
		location = "[No Storage]"
	}
	failed := ""
	if sb.saveFailed {
		failed = " [Not Saved]"
	}
	return fmt.Sprintf("%s%s -- %s -- Block: %d/%d, Col: %d",
		location, failed, sb.blockType, sb.blockIndex+1, sb.blockCount, sb.offset+1)
}

// Text returns the line Draw would show and the theme style name for it.
func (sb *StatusBar) Text() (text, styleName string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	if isTempMsgActive {
		switch sb.tempKind {
		case KindError:
			return sb.tempMessage, "StatusBar.Error"
		case KindSaved:
			return sb.tempMessage, "StatusBar.Saved"
		default:
			return sb.tempMessage, "StatusBar.Message"
		}
	}
	if sb.saveFailed {
		return sb.getDefaultDisplayText(), "StatusBar.Modified"
	}
	return sb.getDefaultDisplayText(), "StatusBar"
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	if activeTheme == nil {
		activeTheme = theme.TidemarkDark
	}
	y := height - 1

	text, styleName := sb.Text()
	style := activeTheme.GetStyle(styleName)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break // Stop if cluster doesn't fit
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
