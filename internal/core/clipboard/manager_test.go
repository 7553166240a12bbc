package clipboard

import "testing"

func TestRegisterOnly(t *testing.T) {
	m := NewManager(false)
	if m.UsesSystem() {
		t.Fatal("UsesSystem() = true with system disabled")
	}
	if got := m.Paste(); got != "" {
		t.Errorf("Paste() on fresh manager = %q", got)
	}
	if err := m.Copy("# heading"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if got := m.Paste(); got != "# heading" {
		t.Errorf("Paste() = %q", got)
	}
}
