package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func newTestBar() (*StatusBar, *time.Time) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return clock }
	return sb, &clock
}

func TestDefaultText(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetLocation("file:editorContent")
	sb.SetCaretInfo("header-one", 1, 3, 4)

	text, style := sb.Text()
	if text != "file:editorContent -- header-one -- Block: 2/3, Col: 5" {
		t.Errorf("Text() = %q", text)
	}
	if style != "StatusBar" {
		t.Errorf("style = %q", style)
	}

	sb.SetSaveFailed(true)
	text, style = sb.Text()
	if !strings.Contains(text, "[Not Saved]") || style != "StatusBar.Modified" {
		t.Errorf("Text() = %q, %q", text, style)
	}
}

func TestMessagesExpire(t *testing.T) {
	sb, clock := newTestBar()
	sb.SetMessage(KindError, "Save failed: %s", "disk full")

	text, style := sb.Text()
	if text != "Save failed: disk full" || style != "StatusBar.Error" {
		t.Errorf("Text() = %q, %q", text, style)
	}

	*clock = clock.Add(5 * time.Second)
	if text, _ := sb.Text(); strings.HasPrefix(text, "Save failed") {
		t.Errorf("message did not expire: %q", text)
	}
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(12, 3)

	sb, _ := newTestBar()
	sb.SetMessage(KindSaved, "Saved 2 blocks")
	sb.Draw(screen, 12, 3, theme.TidemarkDark)

	var got strings.Builder
	for x := 0; x < 12; x++ {
		r, _, style, _ := screen.GetContent(x, 2)
		got.WriteRune(r)
		if style != theme.TidemarkDark.GetStyle("StatusBar.Saved") {
			t.Fatalf("cell %d style = %v", x, style)
		}
	}
	if got.String() != "Saved 2 bloc" {
		t.Errorf("row = %q", got.String())
	}
}
