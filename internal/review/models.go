// Package review holds the creator-side read models: the list of existing
// tests and the aggregated responses collected for one test. Both come from
// the same schema-less backend as the runtime, so the tolerant field mapping
// convention applies here too.
package review

import (
	"context"
	"time"
)

// TestSummary is one row of the creator's test list.
type TestSummary struct {
	ID         string
	Title      string
	Link       string
	CreatedAt  time.Time
	CreatedRaw string
}

// DateDisplay renders the creation date for listing, falling back to the raw
// backend value when it never parsed as a date.
func (t TestSummary) DateDisplay() string {
	if t.CreatedAt.IsZero() {
		if t.CreatedRaw == "" {
			return "Fecha desconocida"
		}
		return t.CreatedRaw
	}
	return t.CreatedAt.Format("02/01/2006")
}

// TestDraft is a new test as entered by its creator, before the backend
// assigns it a share link.
type TestDraft struct {
	Title         string
	Description   string
	PrototypeLink string
	DeviceType    string
	Questions     []string
}

// ResponseDetail is one tester's answer to a question.
type ResponseDetail struct {
	Answer    string
	Timestamp string
	IsAudio   bool
}

// QuestionResponses groups every collected answer under its question, in
// first-seen question order.
type QuestionResponses struct {
	Question string
	Answers  []ResponseDetail
}

// Directory lists tests and fetches their collected responses.
type Directory interface {
	ListTests(ctx context.Context) ([]TestSummary, error)
	FetchResponses(ctx context.Context, id string) (string, []QuestionResponses, error)
}
