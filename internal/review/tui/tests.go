package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/components"
	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/flexrun/internal/review"
)

// TestSelectedMsg asks the app to open the responses screen for a test.
type TestSelectedMsg struct{ TestID string }

type testsLoadedMsg struct{ tests []review.TestSummary }

type testsErrorMsg struct{ err error }

// Tests displays the creator's test list, newest first.
type Tests struct {
	directory review.Directory
	tests     []review.TestSummary
	loading   bool
	err       error
	cursor    int
	styles    *theme.Styles
	width     int
}

// NewTests creates the test list screen.
func NewTests(directory review.Directory) *Tests {
	return &Tests{
		directory: directory,
		loading:   true,
		styles:    theme.Default(),
	}
}

// Init implements tea.Model
func (t *Tests) Init() tea.Cmd {
	return t.loadTests()
}

func (t *Tests) loadTests() tea.Cmd {
	return func() tea.Msg {
		tests, err := t.directory.ListTests(context.Background())
		if err != nil {
			return testsErrorMsg{err}
		}
		return testsLoadedMsg{tests}
	}
}

// Update implements tea.Model
func (t *Tests) Update(msg tea.Msg) (*Tests, tea.Cmd) {
	switch msg := msg.(type) {
	case testsLoadedMsg:
		t.loading = false
		t.err = nil
		t.tests = msg.tests
		t.cursor = 0
		return t, nil

	case testsErrorMsg:
		t.loading = false
		t.err = msg.err
		return t, nil

	case tea.WindowSizeMsg:
		t.width = msg.Width
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if t.cursor < len(t.tests)-1 {
				t.cursor++
			}
		case "k", "up":
			if t.cursor > 0 {
				t.cursor--
			}
		case "r":
			t.loading = true
			t.err = nil
			return t, t.loadTests()
		case "enter":
			if len(t.tests) > 0 {
				id := t.tests[t.cursor].ID
				return t, func() tea.Msg {
					return TestSelectedMsg{TestID: id}
				}
			}
		}
	}

	return t, nil
}

// View implements tea.Model
func (t *Tests) View() string {
	if t.loading {
		return t.styles.Body.Render("Cargando tests...")
	}
	if t.err != nil {
		return t.styles.Error.Render("No se pudieron cargar los tests.") + "\n" +
			t.styles.Muted.Render(t.err.Error()) + "\n\n" +
			components.NewHelpBar(components.KeyBinding{Key: "r", Desc: "reintentar"}).View()
	}
	if len(t.tests) == 0 {
		return t.styles.Muted.Render("Todavía no creaste ningún test.")
	}

	var b strings.Builder
	for i, test := range t.tests {
		marker := "  "
		title := t.styles.Body.Render(test.Title)
		if i == t.cursor {
			marker = t.styles.Cursor.Render("> ")
			title = t.styles.Highlighted.Render(test.Title)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, title, t.styles.Muted.Render(test.DateDisplay())))
		if i == t.cursor && test.Link != "" {
			b.WriteString("    " + t.styles.Muted.Render(test.Link) + "\n")
		}
	}

	b.WriteString("\n" + components.NewHelpBar(
		components.KeyBinding{Key: "enter", Desc: "ver respuestas"},
		components.KeyBinding{Key: "r", Desc: "recargar"},
	).View())
	return b.String()
}
