package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FadeDuration is the fixed view-swap interval. It stands in for the visual
// fade completing; change it together with the fade styling.
const FadeDuration = 300 * time.Millisecond

// frameInterval approximates the next paint opportunity.
const frameInterval = 16 * time.Millisecond

// FadeOutMsg fires when the outgoing view has finished fading.
type FadeOutMsg struct{ Target int }

// FadeInMsg fires one frame after the target view was revealed faded.
type FadeInMsg struct{}

// Transition drives the shared view-switch protocol: the visible view is
// marked fading, swapped after FadeDuration, and the target is revealed
// starting faded then cleared on the next frame so it animates in. The first
// switch shows its target immediately, with no transition.
type Transition struct {
	current   int
	started   bool
	fadingOut bool
	fadingIn  bool
}

// NewTransition creates a transition with no visible view yet.
func NewTransition() Transition {
	return Transition{}
}

// Current returns the currently visible view.
func (t *Transition) Current() int { return t.current }

// Started reports whether any view has been shown yet.
func (t *Transition) Started() bool { return t.started }

// Fading reports whether a switch is in progress; fading views render faint.
func (t *Transition) Fading() bool { return t.fadingOut || t.fadingIn }

// SwitchTo begins a switch to the target view. It returns nil when the target
// was shown immediately (first load) and ignores requests while a switch is
// already running or when the target is already visible.
func (t *Transition) SwitchTo(target int) tea.Cmd {
	if !t.started {
		t.started = true
		t.current = target
		return nil
	}
	if t.fadingOut || target == t.current {
		return nil
	}

	t.fadingOut = true
	return tea.Tick(FadeDuration, func(time.Time) tea.Msg {
		return FadeOutMsg{Target: target}
	})
}

// Update advances the transition on its own messages. The returned command,
// when non-nil, must be dispatched for the fade-in to clear.
func (t *Transition) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FadeOutMsg:
		t.current = msg.Target
		t.fadingOut = false
		t.fadingIn = true
		return tea.Tick(frameInterval, func(time.Time) tea.Msg {
			return FadeInMsg{}
		})
	case FadeInMsg:
		t.fadingIn = false
	}
	return nil
}
