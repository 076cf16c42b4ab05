// Package styles centralizes lipgloss styles for the cinder TUI.
//
// The style vars default to the dark palette; Apply switches them to the
// palette named by ui.theme before the first frame renders.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors, set by Apply. Defaults match the dark theme.
var (
	PrimaryColor lipgloss.TerminalColor = lipgloss.Color("#F97316") // Orange
	AccentColor  lipgloss.TerminalColor = lipgloss.Color("#FBBF24") // Amber
	ErrorColor   lipgloss.TerminalColor = lipgloss.Color("#F87171") // Red
	MutedColor   lipgloss.TerminalColor = lipgloss.Color("#9CA3AF") // Gray
	TextColor    lipgloss.TerminalColor = lipgloss.Color("#F9FAFB") // Light text
	BorderColor  lipgloss.TerminalColor = lipgloss.Color("#6B7280") // Gray
)

// Styles derived from the colors above; rebuilt by Apply.
var (
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	ErrorText  lipgloss.Style
	ContentBox lipgloss.Style
	HelpBar    lipgloss.Style
	HelpKey    lipgloss.Style
)

func init() {
	Apply("dark")
}

// Apply selects the palette for the given ui.theme value and rebuilds
// every exported style. Unknown themes fall back to dark; "none" renders
// without colors for monochrome terminals.
func Apply(theme string) {
	switch theme {
	case "light":
		PrimaryColor = lipgloss.Color("#C2410C") // Orange, darkened for light backgrounds
		AccentColor = lipgloss.Color("#B45309")  // Amber
		ErrorColor = lipgloss.Color("#B91C1C")   // Red
		MutedColor = lipgloss.Color("#6B7280")   // Gray
		TextColor = lipgloss.Color("#111827")    // Near black
		BorderColor = lipgloss.Color("#9CA3AF")  // Gray
	case "none":
		PrimaryColor = lipgloss.NoColor{}
		AccentColor = lipgloss.NoColor{}
		ErrorColor = lipgloss.NoColor{}
		MutedColor = lipgloss.NoColor{}
		TextColor = lipgloss.NoColor{}
		BorderColor = lipgloss.NoColor{}
	default:
		PrimaryColor = lipgloss.Color("#F97316") // Orange
		AccentColor = lipgloss.Color("#FBBF24")  // Amber
		ErrorColor = lipgloss.Color("#F87171")   // Red
		MutedColor = lipgloss.Color("#9CA3AF")   // Gray
		TextColor = lipgloss.Color("#F9FAFB")    // Light text
		BorderColor = lipgloss.Color("#6B7280")  // Gray
	}

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	ContentBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor)

	HelpKey = lipgloss.NewStyle().
		Foreground(AccentColor).
		Bold(true)
}
