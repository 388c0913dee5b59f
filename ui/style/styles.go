// Package style holds the lipgloss styles widgets render with.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for widget views.
type Styles struct {
	// Windows
	Window      lipgloss.Style
	WindowTitle lipgloss.Style

	// Text
	Label     lipgloss.Style
	AccessKey lipgloss.Style // Underlined access key letter

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonHover   lipgloss.Style
	ButtonPressed lipgloss.Style

	// Editing
	EditBox        lipgloss.Style
	EditBoxFocused lipgloss.Style

	// Sliders and spin boxes
	Track        lipgloss.Style
	TrackFocused lipgloss.Style
	Handle       lipgloss.Style

	// Misc
	Separator lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Window: lipgloss.NewStyle(),
		WindowTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		AccessKey: lipgloss.NewStyle().
			Underline(true),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		ButtonHover: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("240")),
		ButtonPressed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("57")).
			Bold(true),

		EditBox: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		EditBoxFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Underline(true),

		Track: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		TrackFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")),
		Handle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Magenta handle
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
	}
}

// Plain returns styles without colors or attributes, for headless output.
func Plain() Styles {
	p := lipgloss.NewStyle()
	return Styles{
		Window: p, WindowTitle: p,
		Label: p, AccessKey: p,
		Button: p, ButtonFocused: p, ButtonHover: p, ButtonPressed: p,
		EditBox: p, EditBoxFocused: p,
		Track: p, TrackFocused: p, Handle: p,
		Separator: p, Muted: p, Error: p, Warning: p,
	}
}
