package ui

import "charm.land/lipgloss/v2"

// Theme defines the color palette used throughout the UI.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (focus, selection, titles)
	Primary string
	// Secondary is the secondary accent color (key hints, glyphs)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected row background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Timestamps, previews, hints
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Online   string // Online presence glyph
	Verified string // Verified account glyph
	Unread   string // Unread badge
	Warning  string // Warnings
	Error    string // Error messages

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused panel borders (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkBlue ThemeName = "dark-blue"
	ThemeNord     ThemeName = "nord"
	ThemeDracula  ThemeName = "dracula"
	ThemeGruvbox  ThemeName = "gruvbox"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkBlue

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkBlue: {
		Name:        "Dark Blue",
		Primary:     "#3B82F6",
		Secondary:   "#06B6D4",
		Bg:          "#111827",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#111827",
		Online:      "#10B981",
		Verified:    "#06B6D4",
		Unread:      "#F59E0B",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Border:      "#374151",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Online:      "#A3BE8C",
		Verified:    "#88C0D0",
		Unread:      "#EBCB8B",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Border:      "#4C566A",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Online:      "#50FA7B",
		Verified:    "#8BE9FD",
		Unread:      "#FFB86C",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Border:      "#44475A",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Online:      "#B8BB26",
		Verified:    "#83A598",
		Unread:      "#FABD2F",
		Warning:     "#FE8019",
		Error:       "#FB4934",
		Border:      "#504945",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkBlue,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
	}
}

// GetTheme returns a theme by name, defaulting to DarkBlue if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorOnline = lipgloss.Color(t.Online)
	ColorVerified = lipgloss.Color(t.Verified)
	ColorUnread = lipgloss.Color(t.Unread)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	RowStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	RowSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.TextInverse)).
		Bold(true).
		Padding(0, 1)

	RowMutedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	OnlineGlyphStyle = lipgloss.NewStyle().
		Foreground(ColorOnline)

	VerifiedGlyphStyle = lipgloss.NewStyle().
		Foreground(ColorVerified)

	UnreadBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorUnread)

	PromptTextStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	PromptPlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	CursorStyle = lipgloss.NewStyle().
		Reverse(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	StatusTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
}
