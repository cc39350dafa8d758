package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary   = lipgloss.Color("#F08A5D")
	Secondary = lipgloss.Color("#B83B5E")
	Success   = lipgloss.Color("#C3E88D")
	Warning   = lipgloss.Color("#FFCB6B")
	Error     = lipgloss.Color("#F07178")
	Muted     = lipgloss.Color("#7E6B62")
	Text      = lipgloss.Color("#F3E9E2")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	TextStyle = lipgloss.NewStyle().
			Foreground(Text)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 2).
			MarginBottom(1)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 2).
			MarginBottom(1)

	CheckedStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1)
)

// StatusStyle colors a mission status
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "active":
		return lipgloss.NewStyle().Foreground(Success)
	case "complete":
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return MutedStyle
	}
}
