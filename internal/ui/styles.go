package ui

import "charm.land/lipgloss/v2"

// Color palette - Blue + Cyan theme
var (
	ColorPrimary     = lipgloss.Color("#3B82F6") // Blue
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#3B82F6") // Blue when focused
	ColorBg          = lipgloss.Color("#111827") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse = lipgloss.Color("#111827") // Dark text for light backgrounds
	ColorOnline      = lipgloss.Color("#10B981") // Green for online presence
	ColorVerified    = lipgloss.Color("#06B6D4") // Cyan for verified accounts
	ColorUnread      = lipgloss.Color("#F59E0B") // Amber for unread badges
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for warnings
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
)

// Panel styles
var (
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
)

// Chat list row styles (updated by regenerateStyles)
var (
	RowStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	RowSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextInverse)).
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
)

// Prompt styles
var (
	PromptTextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	PromptPlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	CursorStyle = lipgloss.NewStyle().
			Reverse(true)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	StatusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)
)
