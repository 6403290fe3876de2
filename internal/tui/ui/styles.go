// Package ui provides shared styles, key bindings, and messages for the
// interactive shell and the script listing.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#cba6f7"} // Mauve
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError     = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
	ColorText      = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"} // Text
)

// NameColumnWidth is the width the script name is padded to in listings.
const NameColumnWidth = 15

// Styles contains reusable lipgloss styles.
type Styles struct {
	// Listing
	Header     lipgloss.Style
	Name       lipgloss.Style
	Descriptor lipgloss.Style
	Footer     lipgloss.Style

	// Status
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style

	// Shell
	Prompt  lipgloss.Style
	Echo    lipgloss.Style
	Help    lipgloss.Style
	HelpKey lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Name: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true),

		Descriptor: lipgloss.NewStyle().
			Foreground(ColorText),

		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Prompt: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Echo: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),

		HelpKey: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged, for non-terminal output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:     plain,
		Name:       plain,
		Descriptor: plain,
		Footer:     plain,
		Success:    plain,
		Warning:    plain,
		Error:      plain,
		Muted:      plain,
		Prompt:     plain,
		Echo:       plain,
		Help:       plain,
		HelpKey:    plain,
	}
}
