package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Service orchestrates a testing session: definition loading, the audio
// capture lifecycle and feedback submission. It owns the coordination state
// that components used to reach for ambiently (the active recording, the
// in-flight fetch); presenters only hold a handle to it.
type Service struct {
	backend  Backend
	recorder Recorder
	metrics  Metrics
	logger   Logger
	now      func() time.Time

	group singleflight.Group

	mu  sync.Mutex
	rec *recordingSession
}

// recordingSession exists only between start and finalization of one capture.
type recordingSession struct {
	questionIndex int
	preserved     string
}

// NewService wires a session service from its ports.
func NewService(backend Backend, recorder Recorder, metrics Metrics, logger Logger) *Service {
	return &Service{
		backend:  backend,
		recorder: recorder,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// LoadDefinition fetches the definition for a test. Concurrent loads for the
// same identifier collapse into a single request; rapid retries never stack.
// Failures come back classified for the presenter's error view.
func (s *Service) LoadDefinition(ctx context.Context, id string) (*TestDefinition, error) {
	started := s.now()
	v, err, _ := s.group.Do(id, func() (any, error) {
		return s.backend.FetchDefinition(ctx, id)
	})
	elapsed := s.now().Sub(started)

	if err != nil {
		s.metrics.RecordFetch(ctx, "error", elapsed)
		s.logger.Error(fmt.Sprintf("definition fetch for %q failed: %v", id, err))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, retryableError("La solicitud tardó demasiado. Verificá que el servidor esté activo.", err)
		}
		return nil, retryableError("No se pudo cargar el test. Verificá tu conexión o que el servidor esté activo.", err)
	}

	s.metrics.RecordFetch(ctx, "ok", elapsed)
	def := v.(*TestDefinition)
	s.logger.Debug(fmt.Sprintf("definition loaded for %q: %q, %d questions", id, def.Title, len(def.Questions)))
	return def, nil
}

// StartRecording acquires the microphone for one question. On denial the
// answer stays untouched and the error blocks the action; on success the
// existing answer text is preserved for restoration and the field shows the
// recording placeholder.
func (s *Service) StartRecording(ctx context.Context, ans *QuestionAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec != nil {
		return permissionError("Ya hay una grabación en curso. Detenela antes de empezar otra.", ErrRecorderBusy)
	}

	if err := s.recorder.Start(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("microphone acquisition failed: %v", err))
		return permissionError("No se pudo acceder al micrófono. Verificá los permisos.", err)
	}

	preserved := strings.TrimSpace(ans.Answer)
	if IsPlaceholder(preserved) {
		preserved = ""
	}

	s.rec = &recordingSession{questionIndex: ans.Index, preserved: preserved}
	ans.State = RecordingActive
	ans.Answer = RecordingPlaceholder
	s.logger.Debug(fmt.Sprintf("recording started for question %d", ans.Index))
	return nil
}

// StopRecording finalizes the active capture for the given question: the
// microphone is released immediately and the buffered audio goes to
// transcription. It returns the text the answer should end up with, either
// the transcription appended to the preserved text or the preserved text
// verbatim when nothing usable came back. The service never touches the
// answer fields here; the presenter owns them and applies the result on its
// own goroutine. A stop with no matching capture is ErrNoActiveRecording.
func (s *Service) StopRecording(ctx context.Context, questionIndex int) (string, error) {
	s.mu.Lock()
	rec := s.rec
	if rec == nil || rec.questionIndex != questionIndex {
		s.mu.Unlock()
		return "", ErrNoActiveRecording
	}
	s.rec = nil
	s.mu.Unlock()

	audio, err := s.recorder.Stop()
	if err != nil {
		s.logger.Error(fmt.Sprintf("recorder stop failed: %v", err))
		return rec.preserved, softError("No se pudo procesar el audio. Intentá de nuevo.", err)
	}
	s.logger.Debug(fmt.Sprintf("captured %d bytes of audio for question %d", len(audio), questionIndex))

	started := s.now()
	text, err := s.backend.TranscribeAudio(ctx, audio)
	elapsed := s.now().Sub(started)

	if err != nil {
		s.metrics.RecordTranscription(ctx, "error", elapsed)
		s.logger.Error(fmt.Sprintf("transcription failed: %v", err))
		return rec.preserved, softError("No se pudo procesar el audio. Intentá de nuevo.", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		// No usable transcription. Not an error: restore what was there.
		s.metrics.RecordTranscription(ctx, "empty", elapsed)
		return rec.preserved, nil
	}

	s.metrics.RecordTranscription(ctx, "ok", elapsed)
	if rec.preserved != "" {
		return rec.preserved + " " + text, nil
	}
	return text, nil
}

// RecordingActive reports whether a capture is currently in progress.
func (s *Service) RecordingActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec != nil
}

// ReleaseRecorder tears down any active capture without transcribing. Used on
// navigation away so the microphone handle never leaks.
func (s *Service) ReleaseRecorder() {
	s.mu.Lock()
	rec := s.rec
	s.rec = nil
	s.mu.Unlock()

	if rec == nil {
		return
	}
	if _, err := s.recorder.Stop(); err != nil {
		s.logger.Error(fmt.Sprintf("recorder release failed: %v", err))
	}
}

// Submit aggregates every answer into a feedback payload and sends it. On
// success the session moves to the finish stage; on failure the answers are
// untouched and the error is retryable from the form.
func (s *Service) Submit(ctx context.Context, session *Session, answers *AnswerSet) error {
	title := ""
	if session.Definition != nil {
		title = session.Definition.Title
	}

	sub, err := answers.BuildSubmission(session.TestID, title, s.now())
	if err != nil {
		return submissionError("Hay una grabación sin finalizar. Detenela antes de enviar.", err)
	}

	if err := s.backend.SubmitFeedback(ctx, sub); err != nil {
		s.metrics.RecordSubmission(ctx, "error")
		s.logger.Error(fmt.Sprintf("feedback submission for %q failed: %v", session.TestID, err))
		return submissionError("No se pudieron guardar las respuestas. Revisá tu conexión e intentá de nuevo.", err)
	}

	s.metrics.RecordSubmission(ctx, "ok")
	s.logger.Debug(fmt.Sprintf("feedback submitted for %q: %d responses", session.TestID, len(sub.Responses)))

	if session.Stage == StageQuestions {
		return session.Advance()
	}
	return nil
}
