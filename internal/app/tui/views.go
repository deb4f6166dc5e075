package tui

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/components"
)

// View implements tea.Model
func (a *App) View() string {
	var body string
	switch {
	case a.loading && !a.trans.Started():
		body = a.styles.Body.Render("Cargando test...")
	case a.trans.Current() == screenWelcome:
		body = a.renderWelcome()
	case a.trans.Current() == screenPrototype:
		body = a.renderPrototype()
	case a.trans.Current() == screenQuestions:
		body = a.renderQuestions()
	case a.trans.Current() == screenFinish:
		body = a.renderFinish()
	case a.trans.Current() == screenError:
		body = a.renderError()
	}

	if a.trans.Fading() {
		body = a.styles.Faded.Render(body)
	}
	return a.styles.Container.Render(body)
}

func (a *App) renderWelcome() string {
	def := a.session.Definition
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("¡Bienvenido/a!") + "\n")
	b.WriteString(a.styles.Subtitle.Render(def.Title) + "\n")
	b.WriteString(a.styles.Body.Render(def.Description) + "\n\n")
	help := components.NewHelpBar(
		components.KeyBinding{Key: "enter", Desc: "Empezar"},
		components.KeyBinding{Key: "q", Desc: "salir"},
	)
	b.WriteString(help.View())
	return b.String()
}

func (a *App) renderPrototype() string {
	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render(a.session.Definition.Title) + "\n")
	if a.embedURL != "" {
		b.WriteString(a.styles.Bold.Render("Prototipo:") + "\n")
		b.WriteString(a.styles.Body.Render(a.embedURL) + "\n")
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("Contenedor %s, relación %d:%d",
			a.session.Definition.DeviceType, a.geometry.AspectWidth, a.geometry.AspectHeight)) + "\n\n")
	} else {
		b.WriteString(a.styles.Warning.Render("Este test no tiene un prototipo asociado.") + "\n\n")
	}

	if a.advisory.Visible() {
		b.WriteString(a.advisory.View() + "\n\n")
	}

	help := components.NewHelpBar(
		components.KeyBinding{Key: "o", Desc: "abrir prototipo"},
		components.KeyBinding{Key: "f", Desc: "pantalla completa"},
		components.KeyBinding{Key: "enter", Desc: "continuar"},
	)
	b.WriteString(help.View())
	return b.String()
}

func (a *App) renderQuestions() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Contanos tu experiencia") + "\n")
	b.WriteString(a.questions.View())
	if a.submitting {
		b.WriteString(a.styles.Info.Render("Enviando respuestas...") + "\n")
	}
	if a.advisory.Visible() {
		b.WriteString(a.advisory.View() + "\n")
	}
	help := components.NewHelpBar(
		components.KeyBinding{Key: "tab", Desc: "siguiente"},
		components.KeyBinding{Key: "ctrl+r", Desc: "grabar/parar"},
		components.KeyBinding{Key: "ctrl+s", Desc: "enviar"},
	)
	b.WriteString(help.View())
	return b.String()
}

func (a *App) renderFinish() string {
	var b strings.Builder
	b.WriteString(a.styles.Success.Render("¡Gracias por participar!") + "\n")
	b.WriteString(a.styles.Body.Render("Tus respuestas fueron enviadas correctamente.") + "\n\n")
	help := components.NewHelpBar(
		components.KeyBinding{Key: "enter", Desc: "cerrar"},
	)
	b.WriteString(help.View())
	return b.String()
}

func (a *App) renderError() string {
	var b strings.Builder
	b.WriteString(a.styles.Error.Render("No se pudo iniciar el test") + "\n")
	if a.sessErr != nil {
		b.WriteString(a.styles.Body.Render(a.sessErr.Message) + "\n\n")
	}
	if a.loading {
		b.WriteString(a.styles.Info.Render("Re-conectando...") + "\n\n")
	}

	bindings := []components.KeyBinding{{Key: "q", Desc: "salir"}}
	if a.sessErr != nil && a.sessErr.Retryable() {
		bindings = append([]components.KeyBinding{{Key: "r", Desc: "reintentar"}}, bindings...)
	}
	b.WriteString(components.NewHelpBar(bindings...).View())
	return b.String()
}
