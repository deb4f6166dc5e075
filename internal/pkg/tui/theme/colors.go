package theme

import "github.com/charmbracelet/lipgloss"

// Color palette matching the web tool's tailwind theme
var (
	// Primary colors
	Blue       = lipgloss.Color("#0D7FF2")
	BrightBlue = lipgloss.Color("#60A5FA")
	DarkBlue   = lipgloss.Color("#1D4ED8")

	// Neutrals
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#6B7280")
	DarkGray  = lipgloss.Color("#374151")
	Black     = lipgloss.Color("#101922")

	// Semantic colors
	Success = lipgloss.Color("#22C55E")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")

	// Recording indicator
	RecordingRed = lipgloss.Color("#DC2626")
)
