package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
	"github.com/emiliopalmerini/flexrun/internal/web/templates"
)

// viewportFromRequest reconstructs the tester's viewport. Dimensions arrive as
// query parameters when the page forwards them; without them a desktop-sized
// viewport is assumed so only the user agent can classify the device as mobile.
func viewportFromRequest(r *http.Request) domain.Viewport {
	v := domain.Viewport{Width: 1920, Height: 1080, UserAgent: r.UserAgent()}
	if w, err := strconv.Atoi(r.URL.Query().Get("vw")); err == nil && w > 0 {
		v.Width = w
	}
	if h, err := strconv.Atoi(r.URL.Query().Get("vh")); err == nil && h > 0 {
		v.Height = h
	}
	return v
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		s.logger.Error(fmt.Sprintf("render failed: %v", err))
	}
}

func (s *Server) renderSessionError(w http.ResponseWriter, r *http.Request, err error, retryURL string) {
	msg := "Algo salió mal. Intentá de nuevo."
	retryable := false
	var serr *domain.SessionError
	if errors.As(err, &serr) {
		msg = serr.Message
		retryable = serr.Retryable()
	}
	w.WriteHeader(http.StatusBadGateway)
	s.render(w, r, templates.ErrorPage(msg, retryable, retryURL))
}

func (s *Server) handleShareLink(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ResolveTestID(r.URL.Query().Get("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, templates.ErrorPage("No se encontró el ID del test en el link.", false, ""))
		return
	}
	http.Redirect(w, r, "/t/"+id, http.StatusFound)
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	def, err := s.service.LoadDefinition(r.Context(), id)
	if err != nil {
		s.renderSessionError(w, r, err, "/t/"+id)
		return
	}
	s.render(w, r, templates.Welcome(def))
}

func (s *Server) handlePrototype(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	def, err := s.service.LoadDefinition(r.Context(), id)
	if err != nil {
		s.renderSessionError(w, r, err, "/t/"+id)
		return
	}

	viewport := viewportFromRequest(r)
	embedURL := domain.BuildEmbedURL(def.PrototypeLink, s.logger)
	geometry := domain.ContainerGeometry(def.DeviceType, viewport)
	advisory := domain.MobileAdvisory(def.DeviceType, viewport)
	s.render(w, r, templates.Prototype(def, embedURL, geometry, advisory))
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	def, err := s.service.LoadDefinition(r.Context(), id)
	if err != nil {
		s.renderSessionError(w, r, err, "/t/"+id)
		return
	}
	if len(def.Questions) == 0 {
		http.Redirect(w, r, "/t/"+id+"/finish", http.StatusFound)
		return
	}
	s.render(w, r, templates.Questions(def, make([]string, len(def.Questions)), ""))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	def, err := s.service.LoadDefinition(r.Context(), id)
	if err != nil {
		s.renderSessionError(w, r, err, "/t/"+id)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, templates.ErrorPage("No se pudieron leer las respuestas.", false, ""))
		return
	}

	answers := domain.NewAnswerSet(def.Questions)
	values := make([]string, len(def.Questions))
	for _, ans := range answers.All() {
		values[ans.Index] = r.PostFormValue(fmt.Sprintf("answer-%d", ans.Index))
		ans.Answer = values[ans.Index]
	}

	session := &domain.Session{TestID: id, Stage: domain.StageQuestions, Definition: def}
	if err := s.service.Submit(r.Context(), session, answers); err != nil {
		msg := "No se pudieron guardar las respuestas. Revisá tu conexión e intentá de nuevo."
		var serr *domain.SessionError
		if errors.As(err, &serr) {
			msg = serr.Message
		}
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, templates.Questions(def, values, msg))
		return
	}

	http.Redirect(w, r, "/t/"+id+"/finish", http.StatusFound)
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, templates.Finish())
}

func (s *Server) handleTests(w http.ResponseWriter, r *http.Request) {
	tests, err := s.directory.ListTests(r.Context())
	if err != nil {
		s.logger.Error(fmt.Sprintf("test list failed: %v", err))
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, templates.ErrorPage("No se pudieron cargar los tests.", true, "/tests"))
		return
	}
	s.render(w, r, templates.Tests(tests))
}

func (s *Server) handleResponses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	title, grouped, err := s.directory.FetchResponses(r.Context(), id)
	if err != nil {
		s.logger.Error(fmt.Sprintf("responses fetch for %q failed: %v", id, err))
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, templates.ErrorPage("No se pudieron cargar las respuestas.", true, "/tests/"+id))
		return
	}
	s.render(w, r, templates.Responses(title, grouped))
}
