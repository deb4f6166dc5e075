package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuestionsModel_FocusNavigation(t *testing.T) {
	answers := domain.NewAnswerSet([]string{"q1", "q2", "q3"})
	m := newQuestionsModel(answers, 80)

	if m.focus != 0 {
		t.Fatalf("initial focus = %d", m.focus)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Errorf("focus after tab = %d, want 1", m.focus)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != 0 {
		t.Errorf("focus after shift+tab = %d, want 0", m.focus)
	}

	// Wraps around backwards.
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != 2 {
		t.Errorf("focus after wrap = %d, want 2", m.focus)
	}
}

func TestQuestionsModel_TabSyncsAnswer(t *testing.T) {
	answers := domain.NewAnswerSet([]string{"q1", "q2"})
	m := newQuestionsModel(answers, 80)

	m.Update(keyMsg("hola"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if got := answers.Get(0).Answer; got != "hola" {
		t.Errorf("answer after tab = %q, want %q", got, "hola")
	}
}

func TestQuestionsModel_TypingBlockedWhileCapturing(t *testing.T) {
	answers := domain.NewAnswerSet([]string{"q1"})
	m := newQuestionsModel(answers, 80)
	answers.Get(0).State = domain.RecordingActive
	m.showRecording(0)

	m.Update(keyMsg("x"))
	if got := m.inputs[0].Value(); got != domain.RecordingPlaceholder {
		t.Errorf("value = %q, typing should be ignored while recording", got)
	}
}

func TestQuestionsModel_ApplyResult(t *testing.T) {
	answers := domain.NewAnswerSet([]string{"q1"})
	m := newQuestionsModel(answers, 80)

	m.showProcessing(0)
	if got := m.inputs[0].Value(); got != domain.ProcessingPlaceholder {
		t.Fatalf("value = %q", got)
	}

	m.applyResult(0, "lo anterior y lo nuevo")
	if got := m.inputs[0].Value(); got != "lo anterior y lo nuevo" {
		t.Errorf("value = %q", got)
	}
}

func TestQuestionsModel_ViewShowsStates(t *testing.T) {
	answers := domain.NewAnswerSet([]string{"q1", "q2"})
	m := newQuestionsModel(answers, 80)
	answers.Get(1).State = domain.RecordingActive

	view := m.View()
	if !strings.Contains(view, "q1") || !strings.Contains(view, "q2") {
		t.Error("questions missing from view")
	}
	if !strings.Contains(view, domain.RecordingPlaceholder) {
		t.Error("recording indicator missing")
	}
}
