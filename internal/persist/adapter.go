// Package persist serializes document snapshots and keeps the latest one in a
// storage.KV under a single fixed key.
package persist

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/storage"
)

// DefaultKey is the storage key the document lives under.
const DefaultKey = "editorContent"

// Adapter loads and saves the document through a KV store.
type Adapter struct {
	kv  storage.KV
	key string
}

// NewAdapter returns an adapter storing under key (DefaultKey when empty).
func NewAdapter(kv storage.KV, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key}
}

// Key returns the storage key in use.
func (a *Adapter) Key() string { return a.key }

// Load returns the stored document. A missing key, a read error or an
// undecodable value all report ok=false; the latter two are logged.
func (a *Adapter) Load() (document.Snapshot, bool) {
	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		logger.Warnf("Persist: failed to read %q, starting empty: %v", a.key, err)
		return document.Empty(), false
	}
	if !ok {
		logger.Debugf("Persist: no stored document under %q", a.key)
		return document.Empty(), false
	}

	snap, err := Unmarshal([]byte(raw))
	if err != nil {
		logger.Warnf("Persist: stored document under %q is unreadable, starting empty: %v", a.key, err)
		return document.Empty(), false
	}
	logger.Infof("Persist: loaded %d block(s) from %q", snap.Len(), a.key)
	return snap, true
}

// Save writes s under the adapter key.
func (a *Adapter) Save(s document.Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := a.kv.Set(a.key, string(data)); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	logger.DebugTagf("persist", "Saved %d bytes under %q", len(data), a.key)
	return nil
}
