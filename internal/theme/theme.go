// Package theme maps document style names and UI element names to terminal
// styles. Block types ("header-one") and inline styles ("BOLD", "RED_COLOR",
// "UNDERLINE") are looked up by the same names the document uses.
package theme

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme holds a resolved style per name plus the partial overlays needed to
// stack inline styles on top of each other.
type Theme struct {
	Name     string
	IsDark   bool
	Styles   map[string]tcell.Style
	overlays map[string]overlay
}

// GetStyle returns the style for name. A dotted name ("StatusBar.Error")
// falls back to its base ("StatusBar"), anything else to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dotIndex := strings.LastIndex(name, "."); dotIndex != -1 {
		return t.GetStyle(name[:dotIndex])
	}
	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// TextStyle composes the style of a run of text: the block type's style with
// each inline style's overlay applied in order. Unknown inline names are skipped.
func (t *Theme) TextStyle(blockType string, inline []string) tcell.Style {
	style := t.GetStyle(blockType)
	for _, name := range inline {
		if o, ok := t.overlays[name]; ok {
			style = o.apply(style)
		}
	}
	return style
}

// resolve fills Styles from the overlays. Dotted names stack on their base.
func (t *Theme) resolve() {
	t.Styles = make(map[string]tcell.Style, len(t.overlays))
	base := tcell.StyleDefault
	if o, ok := t.overlays["Default"]; ok {
		base = o.apply(tcell.StyleDefault)
	}
	t.Styles["Default"] = base

	var walk func(name string) tcell.Style
	walk = func(name string) tcell.Style {
		if style, ok := t.Styles[name]; ok {
			return style
		}
		parent := base
		if dotIndex := strings.LastIndex(name, "."); dotIndex != -1 {
			parent = walk(name[:dotIndex])
		}
		style := parent
		if o, ok := t.overlays[name]; ok {
			style = o.apply(parent)
			t.Styles[name] = style
		}
		return style
	}
	for name := range t.overlays {
		walk(name)
	}
}

// merge returns a theme with other's overlays laid over t's.
func (t *Theme) merge(other *Theme) *Theme {
	out := &Theme{
		Name:     other.Name,
		IsDark:   other.IsDark,
		overlays: make(map[string]overlay, len(t.overlays)+len(other.overlays)),
	}
	for name, o := range t.overlays {
		out.overlays[name] = o
	}
	for name, o := range other.overlays {
		out.overlays[name] = out.overlays[name].stack(o)
	}
	out.resolve()
	return out
}

func str(s string) *string { return &s }
func yes() *bool           { b := true; return &b }

// builtinDefs is the Tidemark Dark palette.
var builtinDefs = TomlTheme{
	Name:   "Tidemark Dark",
	IsDark: true,
	Styles: map[string]TomlStyleDef{
		"Default":    {Fg: str("#c5cdd9"), Bg: str("reset")},
		"Selection":  {Reverse: yes()},
		"header-one": {Fg: str("#e5c07b"), Bold: yes()},
		"BOLD":       {Bold: yes()},
		"RED_COLOR":  {Fg: str("red")},
		"UNDERLINE":  {Underline: yes()},

		"StatusBar":          {Fg: str("#c5cdd9"), Bg: str("#2a2f38")},
		"StatusBar.Message":  {Bold: yes()},
		"StatusBar.Error":    {Fg: str("#e06c75"), Bold: yes()},
		"StatusBar.Saved":    {Fg: str("#98c379")},
		"StatusBar.Modified": {Fg: str("#e5c07b")},
	},
}

// TidemarkDark is the built-in theme.
var TidemarkDark = mustBuild(builtinDefs)

func mustBuild(tt TomlTheme) *Theme {
	t, err := buildTheme(tt)
	if err != nil {
		panic("theme: invalid built-in theme: " + err.Error())
	}
	return t
}
