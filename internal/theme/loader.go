package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef represents a single style definition in the TOML file
type TomlStyleDef struct {
	Fg            *string `toml:"fg"` // Use pointers to detect missing values
	Bg            *string `toml:"bg"`
	Bold          *bool   `toml:"bold"`
	Italic        *bool   `toml:"italic"`
	Underline     *bool   `toml:"underline"`
	Reverse       *bool   `toml:"reverse"`
	StrikeThrough *bool   `toml:"strikethrough"`
}

// TomlTheme represents the structure of a theme file
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// overlay is a parsed TomlStyleDef: only the fields it sets are applied.
type overlay struct {
	fg, bg                                          *tcell.Color
	bold, italic, underline, reverse, strikeThrough *bool
}

func (o overlay) apply(style tcell.Style) tcell.Style {
	if o.fg != nil {
		style = style.Foreground(*o.fg)
	}
	if o.bg != nil {
		style = style.Background(*o.bg)
	}
	if o.bold != nil {
		style = style.Bold(*o.bold)
	}
	if o.italic != nil {
		style = style.Italic(*o.italic)
	}
	if o.underline != nil {
		style = style.Underline(*o.underline)
	}
	if o.reverse != nil {
		style = style.Reverse(*o.reverse)
	}
	if o.strikeThrough != nil {
		style = style.StrikeThrough(*o.strikeThrough)
	}
	return style
}

// stack returns o with every field top sets replaced by top's value.
func (o overlay) stack(top overlay) overlay {
	if top.fg != nil {
		o.fg = top.fg
	}
	if top.bg != nil {
		o.bg = top.bg
	}
	if top.bold != nil {
		o.bold = top.bold
	}
	if top.italic != nil {
		o.italic = top.italic
	}
	if top.underline != nil {
		o.underline = top.underline
	}
	if top.reverse != nil {
		o.reverse = top.reverse
	}
	if top.strikeThrough != nil {
		o.strikeThrough = top.strikeThrough
	}
	return o
}

// LoadThemeFromFile parses a TOML file and converts it to a Theme object
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}

	var tomlTheme TomlTheme
	metadata, err := toml.Decode(string(data), &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme file '%s': %w", filePath, err)
	}

	// Check for undecoded keys (potential typos in theme file)
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys in file '%s': %v", tomlTheme.Name, filePath, metadata.Undecoded())
	}

	if tomlTheme.Name == "" {
		// Use filename as fallback name if not specified
		tomlTheme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		logger.Debugf("Theme file '%s' missing 'name', using filename '%s'", filePath, tomlTheme.Name)
	}

	theme, err := buildTheme(tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	logger.Debugf("Successfully loaded theme '%s' from '%s'", theme.Name, filePath)
	return theme, nil
}

// buildTheme converts every style definition. A bad "Default" is an error;
// any other bad definition is logged and skipped.
func buildTheme(tt TomlTheme) (*Theme, error) {
	theme := &Theme{
		Name:     tt.Name,
		IsDark:   tt.IsDark,
		overlays: make(map[string]overlay, len(tt.Styles)),
	}
	for name, def := range tt.Styles {
		o, err := convertTomlStyle(def)
		if err != nil {
			if name == "Default" {
				return nil, fmt.Errorf("style 'Default': %w", err)
			}
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", tt.Name, name, err)
			continue
		}
		theme.overlays[name] = o
	}
	theme.resolve()
	return theme, nil
}

// convertTomlStyle parses the colors of a TOML definition.
func convertTomlStyle(def TomlStyleDef) (overlay, error) {
	o := overlay{
		bold:          def.Bold,
		italic:        def.Italic,
		underline:     def.Underline,
		reverse:       def.Reverse,
		strikeThrough: def.StrikeThrough,
	}
	if def.Fg != nil {
		color, err := parseColorString(*def.Fg)
		if err != nil {
			return o, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		o.fg = &color
	}
	if def.Bg != nil {
		color, err := parseColorString(*def.Bg)
		if err != nil {
			return o, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		o.bg = &color
	}
	return o, nil
}

// parseColorString converts "#rrggbb", "reset", "default" or a named color
// ("red", "navy") to a tcell.Color.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if color, ok := tcell.ColorNames[s]; ok {
		return color, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
