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

type responsesLoadedMsg struct {
	title   string
	grouped []review.QuestionResponses
}

type responsesErrorMsg struct{ err error }

// Responses displays the collected answers for one test, grouped by question.
type Responses struct {
	directory review.Directory
	testID    string
	title     string
	grouped   []review.QuestionResponses
	loading   bool
	err       error
	styles    *theme.Styles
}

// NewResponses creates the responses screen for a test.
func NewResponses(directory review.Directory, testID string) *Responses {
	return &Responses{
		directory: directory,
		testID:    testID,
		loading:   true,
		styles:    theme.Default(),
	}
}

// Init implements tea.Model
func (r *Responses) Init() tea.Cmd {
	return r.loadResponses()
}

func (r *Responses) loadResponses() tea.Cmd {
	return func() tea.Msg {
		title, grouped, err := r.directory.FetchResponses(context.Background(), r.testID)
		if err != nil {
			return responsesErrorMsg{err}
		}
		return responsesLoadedMsg{title: title, grouped: grouped}
	}
}

// Update implements tea.Model
func (r *Responses) Update(msg tea.Msg) (*Responses, tea.Cmd) {
	switch msg := msg.(type) {
	case responsesLoadedMsg:
		r.loading = false
		r.err = nil
		r.title = msg.title
		r.grouped = msg.grouped
		return r, nil

	case responsesErrorMsg:
		r.loading = false
		r.err = msg.err
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			r.loading = true
			r.err = nil
			return r, r.loadResponses()
		}
	}

	return r, nil
}

// View implements tea.Model
func (r *Responses) View() string {
	if r.loading {
		return r.styles.Body.Render("Cargando respuestas...")
	}
	if r.err != nil {
		return r.styles.Error.Render("No se pudieron cargar las respuestas.") + "\n" +
			r.styles.Muted.Render(r.err.Error()) + "\n\n" +
			components.NewHelpBar(components.KeyBinding{Key: "r", Desc: "reintentar"}).View()
	}

	var b strings.Builder
	if r.title != "" {
		b.WriteString(r.styles.Subtitle.Render(r.title) + "\n")
	}
	if len(r.grouped) == 0 {
		b.WriteString(r.styles.Muted.Render("Este test todavía no tiene respuestas."))
		return b.String()
	}

	for i, group := range r.grouped {
		b.WriteString(r.styles.Bold.Render(fmt.Sprintf("%d. %s", i+1, group.Question)) + "\n")
		for _, ans := range group.Answers {
			line := "   - " + ans.Answer
			if ans.IsAudio {
				line += " " + r.styles.Info.Render("[audio]")
			}
			if ans.Timestamp != "" {
				line += "  " + r.styles.Muted.Render(ans.Timestamp)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(components.NewHelpBar(
		components.KeyBinding{Key: "esc", Desc: "volver"},
		components.KeyBinding{Key: "r", Desc: "recargar"},
	).View())
	return b.String()
}
