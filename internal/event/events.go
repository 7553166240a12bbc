// Package event is a small synchronous publish/subscribe bus used to tell the
// UI (status line, redraw) about document changes.
package event

import "github.com/bethropolis/tidemark/internal/document"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeDocumentLoaded   // Store reached Ready (from storage or empty)
	TypeSnapshotReplaced // Store adopted a new snapshot
	TypeTriggerFired     // A formatting trigger replaced a keystroke
	TypeDocumentSaved    // Snapshot written to storage
	TypeSaveFailed       // Writing to storage failed; editing continues

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeDocumentLoaded:   "DocumentLoaded",
	TypeSnapshotReplaced: "SnapshotReplaced",
	TypeTriggerFired:     "TriggerFired",
	TypeDocumentSaved:    "DocumentSaved",
	TypeSaveFailed:       "SaveFailed",
	TypeAppReady:         "AppReady",
	TypeAppQuit:          "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentLoadedData tells whether the document came from storage.
type DocumentLoadedData struct {
	FromStorage bool
	Blocks      int
}

// SnapshotReplacedData carries the snapshot that was adopted.
type SnapshotReplacedData struct {
	Snapshot document.Snapshot
}

// TriggerFiredData describes a fired trigger.
type TriggerFiredData struct {
	Marker   string
	BlockKey string
}

// DocumentSavedData carries the size of the saved document.
type DocumentSavedData struct {
	Blocks int
}

// SaveFailedData carries the storage error.
type SaveFailedData struct {
	Err error
}

// AppReadyData could carry startup state later.
type AppReadyData struct{}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}
