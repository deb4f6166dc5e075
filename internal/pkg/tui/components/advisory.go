package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/theme"
)

// Advisory renders a transient, dismissible banner. At most one is shown at a
// time: showing a new one replaces the current one and restarts its clock.
type Advisory struct {
	message string
	shownAt time.Time
	ttl     time.Duration
	styles  *theme.Styles
}

// NewAdvisory creates an empty advisory banner.
func NewAdvisory() Advisory {
	return Advisory{styles: theme.Default()}
}

// Show displays a message that auto-dismisses after ttl.
func (a *Advisory) Show(message string, ttl time.Duration, now time.Time) {
	a.message = message
	a.ttl = ttl
	a.shownAt = now
}

// Dismiss hides the banner immediately.
func (a *Advisory) Dismiss() {
	a.message = ""
}

// Expire hides the banner once its time is up.
func (a *Advisory) Expire(now time.Time) {
	if a.message != "" && now.Sub(a.shownAt) >= a.ttl {
		a.message = ""
	}
}

// Visible reports whether the banner currently has a message.
func (a Advisory) Visible() bool { return a.message != "" }

// View renders the banner.
func (a Advisory) View() string {
	if a.message == "" {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Warning).
		Padding(0, 1)
	return box.Render(a.styles.Warning.Render(a.message) + a.styles.Muted.Render("  (x para cerrar)"))
}
