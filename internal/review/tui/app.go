// Package tui implements the creator dashboard: the list of existing tests
// and the responses collected for each of them.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/flexrun/internal/review"
)

// Screen identifies the current screen
type Screen int

const (
	ScreenTests Screen = iota
	ScreenResponses
)

// App is the creator dashboard TUI application
type App struct {
	directory     review.Directory
	currentScreen Screen
	tests         *Tests
	responses     *Responses
	styles        *theme.Styles
	width         int
	height        int
}

// NewApp creates a new dashboard application
func NewApp(directory review.Directory) *App {
	return &App{
		directory:     directory,
		currentScreen: ScreenTests,
		tests:         NewTests(directory),
		styles:        theme.Default(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.tests.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			if a.currentScreen != ScreenTests {
				a.currentScreen = ScreenTests
				return a, a.tests.Init()
			}
		case "esc":
			if a.currentScreen == ScreenResponses {
				a.currentScreen = ScreenTests
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case TestSelectedMsg:
		a.responses = NewResponses(a.directory, msg.TestID)
		a.currentScreen = ScreenResponses
		return a, a.responses.Init()
	}

	// Forward to current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenTests:
		a.tests, cmd = a.tests.Update(msg)
	case ScreenResponses:
		if a.responses != nil {
			a.responses, cmd = a.responses.Update(msg)
		}
	}

	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	sep := lipgloss.NewStyle().
		Foreground(theme.DarkGray).
		Render("────────────────────────────────────────────────────────────────")

	var content string
	switch a.currentScreen {
	case ScreenTests:
		content = a.tests.View()
	case ScreenResponses:
		if a.responses != nil {
			content = a.responses.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, sep, "", content)
}

func (a *App) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.White).
		Render("FLEXRUN")

	tagline := lipgloss.NewStyle().
		Foreground(theme.DimGray).
		Render("Panel de tests")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", tagline)
}

func (a *App) renderNav() string {
	items := []NavItem{
		{Key: "1", Label: "Tests", Active: a.currentScreen == ScreenTests},
		{Key: "enter", Label: "Respuestas", Active: a.currentScreen == ScreenResponses},
	}
	nav := NewNavBar(items)
	return nav.View()
}
