package domain

import (
	"context"
	"time"
)

// Logger defines the interface for diagnostic logging
type Logger interface {
	Debug(message string)
	Error(message string)
}

// Backend defines the remote operations the runtime depends on.
// All operations honor caller context cancellation.
type Backend interface {
	// FetchDefinition retrieves the test definition for the given identifier.
	FetchDefinition(ctx context.Context, id string) (*TestDefinition, error)
	// SubmitFeedback sends the aggregate feedback payload. The response body is ignored.
	SubmitFeedback(ctx context.Context, sub *FeedbackSubmission) error
	// TranscribeAudio sends recorded audio for transcription. An empty string with a
	// nil error means no transcription is available; that outcome is not fatal.
	TranscribeAudio(ctx context.Context, audio []byte) (string, error)
}

// Recorder captures audio from the microphone. The microphone is an exclusive
// resource: Start fails while a capture is active, and Stop must release it on
// every path.
type Recorder interface {
	Start(ctx context.Context) error
	// Stop ends the capture, releases the microphone and returns the buffered audio.
	Stop() ([]byte, error)
}

// Metrics exports runtime counters to an external observability system.
type Metrics interface {
	RecordFetch(ctx context.Context, outcome string, elapsed time.Duration)
	RecordSubmission(ctx context.Context, outcome string)
	RecordTranscription(ctx context.Context, outcome string, elapsed time.Duration)
	Close(ctx context.Context) error
}
