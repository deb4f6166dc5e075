package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{RecordingPlaceholder, true},
		{ProcessingPlaceholder, true},
		{" " + RecordingPlaceholder + " ", true},
		{"Grabando", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPlaceholder(tt.text); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestBuildSubmission(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("ART", -3*60*60))

	set := NewAnswerSet([]string{"¿Primera?", "¿Segunda?", "¿Tercera?"})
	set.Get(0).Answer = "  me gustó  "
	set.Get(1).Answer = ProcessingPlaceholder // stale placeholder, must submit empty
	// third left empty on purpose

	sub, err := set.BuildSubmission("rec1", "Checkout", now)
	if err != nil {
		t.Fatalf("BuildSubmission() error: %v", err)
	}

	want := &FeedbackSubmission{
		TestID: "rec1",
		Title:  "Checkout",
		Responses: []ResponseEntry{
			{QuestionIndex: 0, Question: "¿Primera?", Answer: "me gustó"},
			{QuestionIndex: 1, Question: "¿Segunda?", Answer: ""},
			{QuestionIndex: 2, Question: "¿Tercera?", Answer: ""},
		},
		Timestamp: "2026-03-14T18:09:26Z",
	}
	if diff := cmp.Diff(want, sub); diff != "" {
		t.Errorf("BuildSubmission() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSubmission_RecordingInProgress(t *testing.T) {
	set := NewAnswerSet([]string{"¿Primera?"})
	set.Get(0).State = RecordingActive

	if _, err := set.BuildSubmission("rec1", "T", time.Now()); err == nil {
		t.Fatal("expected error while a recording is active")
	}
}

func TestAnswerSetGet_OutOfRange(t *testing.T) {
	set := NewAnswerSet([]string{"q"})
	if set.Get(-1) != nil || set.Get(1) != nil {
		t.Error("out-of-range Get should return nil")
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}
