package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

const answerHeight = 3

// questionsModel holds the per-question text areas for the questions view.
// The answer set is the source of truth; text areas are synced into it before
// recording starts and before submission.
type questionsModel struct {
	answers   *domain.AnswerSet
	inputs    []textarea.Model
	focus     int
	submitErr string
	width     int
	styles    *theme.Styles
}

func newQuestionsModel(answers *domain.AnswerSet, width int) questionsModel {
	m := questionsModel{
		answers: answers,
		width:   width,
		styles:  theme.Default(),
	}
	for range answers.All() {
		ta := textarea.New()
		ta.Placeholder = "Escribí tu respuesta o grabá un audio (ctrl+r)"
		ta.SetHeight(answerHeight)
		ta.CharLimit = 0
		ta.ShowLineNumbers = false
		m.inputs = append(m.inputs, ta)
	}
	m.resize(width)
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m *questionsModel) resize(width int) {
	m.width = width
	w := width - 6
	if w < 20 {
		w = 20
	}
	for i := range m.inputs {
		m.inputs[i].SetWidth(w)
	}
}

// resetScroll moves focus back to the first question, mirroring the
// scroll-to-top that happens on every view switch.
func (m *questionsModel) resetScroll() {
	if len(m.inputs) == 0 {
		return
	}
	m.setFocus(0)
}

func (m *questionsModel) setFocus(i int) {
	if i < 0 || i >= len(m.inputs) {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *questionsModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		m.syncAnswer(m.focus)
		m.setFocus((m.focus + 1) % len(m.inputs))
		return nil
	case "shift+tab":
		m.syncAnswer(m.focus)
		m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
		return nil
	}

	ans := m.answers.Get(m.focus)
	if ans != nil && ans.State != domain.RecordingIdle {
		// Typing over the capture placeholders would lose the preserved text.
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

// syncAnswer copies the text area value into the answer set.
func (m *questionsModel) syncAnswer(i int) {
	ans := m.answers.Get(i)
	if ans == nil || i >= len(m.inputs) {
		return
	}
	if ans.State == domain.RecordingIdle {
		ans.Answer = m.inputs[i].Value()
	}
}

func (m *questionsModel) syncAll() {
	for i := range m.inputs {
		m.syncAnswer(i)
	}
}

// showRecording swaps the text area to the live-capture placeholder.
func (m *questionsModel) showRecording(i int) {
	if i >= 0 && i < len(m.inputs) {
		m.inputs[i].SetValue(domain.RecordingPlaceholder)
	}
}

// showProcessing swaps the text area to the transcription placeholder.
func (m *questionsModel) showProcessing(i int) {
	if i >= 0 && i < len(m.inputs) {
		m.inputs[i].SetValue(domain.ProcessingPlaceholder)
	}
}

// applyResult writes the post-transcription answer back into the text area.
func (m *questionsModel) applyResult(i int, text string) {
	if i >= 0 && i < len(m.inputs) {
		m.inputs[i].SetValue(text)
		m.inputs[i].CursorEnd()
	}
}

func (m questionsModel) View() string {
	var b strings.Builder
	for i, ans := range m.answers.All() {
		marker := "  "
		if i == m.focus {
			marker = m.styles.Highlighted.Render("> ")
		}
		b.WriteString(marker + m.styles.Bold.Render(fmt.Sprintf("%d. %s", i+1, ans.Question)) + "\n")
		switch ans.State {
		case domain.RecordingActive:
			b.WriteString(m.styles.Recording.Render("● "+domain.RecordingPlaceholder) + "\n")
		case domain.RecordingProcessing:
			b.WriteString(m.styles.Info.Render(domain.ProcessingPlaceholder) + "\n")
		}
		b.WriteString(m.inputs[i].View() + "\n\n")
	}
	if m.submitErr != "" {
		b.WriteString(m.styles.Error.Render(m.submitErr) + "\n")
	}
	return b.String()
}
