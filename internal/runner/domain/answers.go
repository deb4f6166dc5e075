package domain

import (
	"fmt"
	"strings"
	"time"
)

// RecordingState is the per-question audio capture sub-state.
type RecordingState int

const (
	RecordingIdle RecordingState = iota
	RecordingActive
	RecordingProcessing
)

// Field placeholders shown while audio is being captured or transcribed. They
// are display state, never feedback content: preserved answers are restored
// around them.
const (
	RecordingPlaceholder  = "Grabando audio..."
	ProcessingPlaceholder = "Traduciendo audio..."
)

// IsPlaceholder reports whether text is one of the transient capture
// placeholders rather than a real answer.
func IsPlaceholder(text string) bool {
	t := strings.TrimSpace(text)
	return t == RecordingPlaceholder || t == ProcessingPlaceholder
}

// QuestionAnswer holds one question's answer text and capture state.
type QuestionAnswer struct {
	Index    int
	Question string
	Answer   string
	State    RecordingState
}

// AnswerSet owns the per-question answers for a session, in fetched question
// order with dense indexes.
type AnswerSet struct {
	answers []*QuestionAnswer
}

// NewAnswerSet creates one answer per question, all idle and empty.
func NewAnswerSet(questions []string) *AnswerSet {
	set := &AnswerSet{answers: make([]*QuestionAnswer, len(questions))}
	for i, q := range questions {
		set.answers[i] = &QuestionAnswer{Index: i, Question: q}
	}
	return set
}

// Len returns the number of questions.
func (a *AnswerSet) Len() int { return len(a.answers) }

// Get returns the answer at index i, or nil when out of range.
func (a *AnswerSet) Get(i int) *QuestionAnswer {
	if i < 0 || i >= len(a.answers) {
		return nil
	}
	return a.answers[i]
}

// All returns the answers in question order.
func (a *AnswerSet) All() []*QuestionAnswer { return a.answers }

// ResponseEntry is one question/answer pair inside a submission payload.
type ResponseEntry struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
}

// FeedbackSubmission is the write-once aggregate payload sent to the backend.
type FeedbackSubmission struct {
	TestID    string          `json:"testId"`
	Title     string          `json:"title"`
	Responses []ResponseEntry `json:"responses"`
	Timestamp string          `json:"timestamp"`
}

// BuildSubmission collects every answer (trimmed, empty allowed) into a
// submission payload stamped with the generation time.
func (a *AnswerSet) BuildSubmission(testID, title string, now time.Time) (*FeedbackSubmission, error) {
	responses := make([]ResponseEntry, 0, len(a.answers))
	for _, ans := range a.answers {
		if ans.State != RecordingIdle {
			return nil, fmt.Errorf("question %d still %s", ans.Index, recordingStateName(ans.State))
		}
		text := strings.TrimSpace(ans.Answer)
		if IsPlaceholder(text) {
			text = ""
		}
		responses = append(responses, ResponseEntry{
			QuestionIndex: ans.Index,
			Question:      ans.Question,
			Answer:        text,
		})
	}

	return &FeedbackSubmission{
		TestID:    testID,
		Title:     title,
		Responses: responses,
		Timestamp: now.UTC().Format(time.RFC3339),
	}, nil
}

func recordingStateName(s RecordingState) string {
	switch s {
	case RecordingActive:
		return "recording"
	case RecordingProcessing:
		return "processing"
	default:
		return "idle"
	}
}
