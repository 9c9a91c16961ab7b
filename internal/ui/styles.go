package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorError     = lipgloss.Color("196") // Red
)

// HeaderStyle for the title line.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// HeaderSubtle for the service URL next to the title.
var HeaderSubtle = lipgloss.NewStyle().
	Foreground(colorMuted)

// HealthOnline marks a reachable service in the header.
var HealthOnline = lipgloss.NewStyle().
	Foreground(lipgloss.Color("78"))

// HealthOffline marks an unreachable service in the header.
var HealthOffline = lipgloss.NewStyle().
	Foreground(colorError)

// InputPrompt for the ">" in front of the search field.
var InputPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// ButtonStyle for the enabled submit control.
var ButtonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Bold(true).
	Padding(0, 1)

// ButtonBusyStyle for the disabled submit control while loading.
var ButtonBusyStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for the one-line error message.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// LoadingStyle for the loading indicator line.
var LoadingStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SelectedMovieStyle for the "Because you liked" label.
var SelectedMovieStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SelectedMovieName for the echoed input movie.
var SelectedMovieName = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarKey style for key hints in the footer.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the footer.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusBar is the full-width bar under the debug overlay.
var StatusBar = lipgloss.NewStyle().
	Background(lipgloss.Color("236")).
	Foreground(lipgloss.Color("252"))

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headers inside the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
