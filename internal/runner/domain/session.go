package domain

import "fmt"

// Stage identifies the current step of a testing session.
type Stage int

const (
	StageWelcome Stage = iota
	StagePrototype
	StageQuestions
	StageFinish
)

func (s Stage) String() string {
	switch s {
	case StageWelcome:
		return "welcome"
	case StagePrototype:
		return "prototype"
	case StageQuestions:
		return "questions"
	case StageFinish:
		return "finish"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// next returns the stage that follows s in the linear flow.
func (s Stage) next() (Stage, bool) {
	if s >= StageFinish {
		return s, false
	}
	return s + 1, true
}

// Session is the state of one tester working through one test. The stage is
// the only field that mutates during the session; the definition is immutable
// once fetched.
type Session struct {
	TestID     string
	Stage      Stage
	Definition *TestDefinition
}

// NewSession creates a session at the welcome stage for an already-resolved
// test identifier.
func NewSession(testID string) *Session {
	return &Session{TestID: testID, Stage: StageWelcome}
}

// Advance moves the session forward one stage. Stages only move forward;
// there is no path back once a stage is left.
func (s *Session) Advance() error {
	next, ok := s.Stage.next()
	if !ok {
		return fmt.Errorf("session already at %s", s.Stage)
	}
	s.Stage = next
	return nil
}

// LocksScroll reports whether the given stage pins page scrolling. Only the
// prototype stage does; leaving it through finish is the surrounding page's
// job to undo.
func (s Stage) LocksScroll() bool {
	return s == StagePrototype
}
