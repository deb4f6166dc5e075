// Package tui implements the tester-facing session runner: welcome,
// prototype, questions and finish views over one testing session.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/components"
	"github.com/emiliopalmerini/flexrun/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

// Session views, in flow order.
const (
	screenWelcome = iota
	screenPrototype
	screenQuestions
	screenFinish
	screenError
)

// Terminal sessions are desktop-class; real mobile viewports only reach the
// runtime through the web presenter.
var terminalViewport = domain.Viewport{Width: 1920, Height: 1080}

// App is the session runner application.
type App struct {
	service *domain.Service
	session *domain.Session
	logger  domain.Logger

	trans   components.Transition
	loading bool
	sessErr *domain.SessionError

	answers   *domain.AnswerSet
	questions questionsModel

	embedURL   string
	geometry   domain.Geometry
	fullscreen bool

	advisory components.Advisory

	submitting bool

	width  int
	height int
	styles *theme.Styles
}

// NewApp creates the session runner for an already-resolved test identifier.
func NewApp(service *domain.Service, session *domain.Session, logger domain.Logger) *App {
	return &App{
		service:  service,
		session:  session,
		logger:   logger,
		trans:    components.NewTransition(),
		advisory: components.NewAdvisory(),
		styles:   theme.Default(),
	}
}

type definitionLoadedMsg struct{ def *domain.TestDefinition }

type definitionFailedMsg struct{ err *domain.SessionError }

type recordingStoppedMsg struct {
	index int
	text  string
	err   *domain.SessionError
}

type submitFinishedMsg struct{ err *domain.SessionError }

type advisoryExpiredMsg struct{}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	a.loading = true
	return a.loadDefinition()
}

func (a *App) loadDefinition() tea.Cmd {
	return func() tea.Msg {
		def, err := a.service.LoadDefinition(context.Background(), a.session.TestID)
		if err != nil {
			return definitionFailedMsg{err: asSessionError(err)}
		}
		return definitionLoadedMsg{def: def}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.questions.resize(msg.Width)
		return a, nil

	case definitionLoadedMsg:
		a.loading = false
		a.sessErr = nil
		a.session.Definition = msg.def
		a.answers = domain.NewAnswerSet(msg.def.Questions)
		a.questions = newQuestionsModel(a.answers, a.width)
		a.embedURL = domain.BuildEmbedURL(msg.def.PrototypeLink, a.logger)
		a.geometry = domain.ContainerGeometry(msg.def.DeviceType, terminalViewport)
		return a, a.trans.SwitchTo(screenWelcome)

	case definitionFailedMsg:
		a.loading = false
		a.sessErr = msg.err
		return a, a.trans.SwitchTo(screenError)

	case components.FadeOutMsg:
		cmd := a.trans.Update(msg)
		// Scroll resets to the top as part of the switch.
		a.questions.resetScroll()
		return a, cmd

	case components.FadeInMsg:
		return a, a.trans.Update(msg)

	case advisoryExpiredMsg:
		// A tick from a superseded banner falls inside the newer banner's
		// lifetime and leaves it visible.
		a.advisory.Expire(time.Now())
		return a, nil

	case recordingStoppedMsg:
		if ans := a.answers.Get(msg.index); ans != nil {
			ans.State = domain.RecordingIdle
			ans.Answer = msg.text
		}
		a.questions.applyResult(msg.index, msg.text)
		if msg.err != nil {
			return a, a.showAdvisory(msg.err.Message)
		}
		return a, nil

	case submitFinishedMsg:
		a.submitting = false
		if msg.err != nil {
			a.questions.submitErr = msg.err.Message
			return a, nil
		}
		return a, a.trans.SwitchTo(screenFinish)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.service.ReleaseRecorder()
		return a, tea.Quit
	}
	if a.trans.Fading() {
		return a, nil
	}

	switch a.trans.Current() {
	case screenWelcome:
		switch msg.String() {
		case "enter":
			if a.loading || a.session.Definition == nil {
				return a, nil
			}
			if err := a.session.Advance(); err != nil {
				return a, nil
			}
			cmds := []tea.Cmd{a.trans.SwitchTo(screenPrototype)}
			if adv := domain.MobileAdvisory(a.session.Definition.DeviceType, terminalViewport); adv != nil {
				cmds = append(cmds, a.showAdvisory(adv.Message))
			}
			return a, tea.Batch(cmds...)
		case "q":
			return a, tea.Quit
		}

	case screenPrototype:
		switch msg.String() {
		case "o":
			if err := openBrowser(a.embedURL); err != nil {
				a.logger.Error("open browser: " + err.Error())
			}
			return a, nil
		case "f":
			return a, a.toggleFullscreen()
		case "x":
			a.advisory.Dismiss()
			return a, nil
		case "enter":
			if err := a.session.Advance(); err != nil {
				return a, nil
			}
			if a.answers.Len() == 0 {
				// Nothing to ask: straight to the finish view.
				_ = a.session.Advance()
				return a, a.trans.SwitchTo(screenFinish)
			}
			return a, a.trans.SwitchTo(screenQuestions)
		}

	case screenQuestions:
		return a.handleQuestionsKey(msg)

	case screenFinish:
		switch msg.String() {
		case "q", "enter":
			return a, tea.Quit
		}

	case screenError:
		switch msg.String() {
		case "r":
			if a.sessErr != nil && a.sessErr.Retryable() && !a.loading {
				a.loading = true
				return a, a.loadDefinition()
			}
		case "q":
			return a, tea.Quit
		}
	}

	return a, nil
}

func (a *App) handleQuestionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.submitting {
		return a, nil
	}
	switch msg.String() {
	case "ctrl+r":
		ans := a.answers.Get(a.questions.focus)
		if ans == nil {
			return a, nil
		}
		if ans.State == domain.RecordingActive {
			ans.State = domain.RecordingProcessing
			ans.Answer = domain.ProcessingPlaceholder
			a.questions.showProcessing(ans.Index)
			return a, a.stopRecording(ans.Index)
		}
		a.questions.syncAnswer(ans.Index)
		if err := a.service.StartRecording(context.Background(), ans); err != nil {
			return a, a.showAdvisory(asSessionError(err).Message)
		}
		a.questions.showRecording(ans.Index)
		return a, nil

	case "ctrl+s":
		if a.service.RecordingActive() {
			return a, nil
		}
		a.questions.syncAll()
		a.questions.submitErr = ""
		a.submitting = true
		return a, a.submit()

	default:
		cmd := a.questions.Update(msg)
		return a, cmd
	}
}

func (a *App) stopRecording(index int) tea.Cmd {
	return func() tea.Msg {
		text, err := a.service.StopRecording(context.Background(), index)
		if errors.Is(err, domain.ErrNoActiveRecording) {
			err = nil
		}
		return recordingStoppedMsg{index: index, text: text, err: asSessionError(err)}
	}
}

func (a *App) submit() tea.Cmd {
	return func() tea.Msg {
		err := a.service.Submit(context.Background(), a.session, a.answers)
		return submitFinishedMsg{err: asSessionError(err)}
	}
}

func (a *App) toggleFullscreen() tea.Cmd {
	a.fullscreen = !a.fullscreen
	if a.fullscreen {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

func (a *App) showAdvisory(message string) tea.Cmd {
	a.advisory.Show(message, domain.AdvisoryTTL, time.Now())
	return tea.Tick(domain.AdvisoryTTL, func(time.Time) tea.Msg {
		return advisoryExpiredMsg{}
	})
}

func asSessionError(err error) *domain.SessionError {
	if err == nil {
		return nil
	}
	var serr *domain.SessionError
	if errors.As(err, &serr) {
		return serr
	}
	return &domain.SessionError{Kind: domain.KindSoft, Message: "Algo salió mal. Intentá de nuevo.", Err: err}
}
