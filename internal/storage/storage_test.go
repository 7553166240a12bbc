package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := NewFileStore(filepath.Join(dir, "files"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	sqliteStore, err := OpenSQLite(filepath.Join(dir, "db", "kv.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	stores := map[string]KV{
		BackendMemory: NewMemoryStore(),
		BackendFile:   fileStore,
		BackendSQLite: sqliteStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("editorContent"); err != nil || ok {
				t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
			}

			if err := kv.Set("editorContent", `{"blocks":[]}`); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := kv.Set("editorContent", `{"blocks":[1]}`); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}
			got, ok, err := kv.Get("editorContent")
			if err != nil || !ok || got != `{"blocks":[1]}` {
				t.Errorf("Get() = %q, %v, %v", got, ok, err)
			}

			if err := kv.Set("a/b c", "x"); err != nil {
				t.Fatalf("Set(odd key) error = %v", err)
			}
			if got, ok, _ := kv.Get("a/b c"); !ok || got != "x" {
				t.Errorf("Get(odd key) = %q, %v", got, ok)
			}
		})
	}
}

func TestClosedStore(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv.Close()
			if err := kv.Set("k", "v"); !errors.Is(err, ErrClosed) {
				t.Errorf("Set after Close error = %v, want ErrClosed", err)
			}
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set("doc", "hello"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok, err := second.Get("doc"); err != nil || !ok || got != "hello" {
		t.Errorf("Get() = %q, %v, %v", got, ok, err)
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open("carrier-pigeon", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("error = %v, want ErrUnknownBackend", err)
	}
	kv, err := Open("Memory", "")
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := kv.(*MemoryStore); !ok {
		t.Errorf("Open(memory) = %T", kv)
	}
	if _, err := Open(BackendFile, ""); err == nil {
		t.Error("Open(file, \"\") succeeded, want error")
	}
}

func TestCloseDuringWrites(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errs := make(chan error, 8)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs <- kv.Set(fmt.Sprintf("k%d", i), "v")
				}(i)
			}
			if err := kv.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				if err != nil && !errors.Is(err, ErrClosed) {
					t.Errorf("Set() error = %v, want nil or ErrClosed", err)
				}
			}
		})
	}
}
