// Package recorder captures microphone audio by driving a command-line
// recording tool and buffering its stream output.
package recorder

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

// ErrNoRecordingTool is returned when none of the known capture tools is
// installed and no override command is configured.
var ErrNoRecordingTool = errors.New("no recording tool found (install sox, alsa-utils or ffmpeg)")

const stopGrace = 2 * time.Second

// Known capture tools, tried in order. All stream mono 16 kHz WAV to stdout.
var candidates = []struct {
	name string
	args []string
}{
	{"rec", []string{"-q", "-c", "1", "-r", "16000", "-t", "wav", "-"}},
	{"arecord", []string{"-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav", "-"}},
	{"ffmpeg", []string{"-loglevel", "quiet", "-f", "pulse", "-i", "default", "-ac", "1", "-ar", "16000", "-f", "wav", "-"}},
}

// ExecRecorder implements domain.Recorder by spawning a capture process. The
// microphone is exclusive: a second Start while one capture is active fails
// with domain.ErrRecorderBusy.
type ExecRecorder struct {
	override string
	logger   domain.Logger

	mu     sync.Mutex
	active *capture
}

type capture struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan struct{}

	chunkMu sync.Mutex
	chunks  [][]byte
}

// New creates a recorder. A non-empty override replaces the candidate tools
// with a custom capture command line.
func New(override string, logger domain.Logger) *ExecRecorder {
	return &ExecRecorder{override: override, logger: logger}
}

func (r *ExecRecorder) command() (string, []string, error) {
	if r.override != "" {
		fields := strings.Fields(r.override)
		return fields[0], fields[1:], nil
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c.name); err == nil {
			return path, c.args, nil
		}
	}
	return "", nil, ErrNoRecordingTool
}

// Start spawns the capture process and begins buffering its output.
func (r *ExecRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return domain.ErrRecorderBusy
	}

	name, args, err := r.command()
	if err != nil {
		return err
	}

	cctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return err
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}
	r.logger.Debug("recording started: " + name)

	c := &capture{cmd: cmd, cancel: cancel, done: make(chan struct{})}
	go c.read(stdout)
	r.active = c
	return nil
}

func (c *capture) read(stdout io.Reader) {
	defer close(c.done)
	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			c.chunkMu.Lock()
			c.chunks = append(c.chunks, chunk)
			c.chunkMu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Stop ends the capture and returns the buffered audio. The process gets an
// interrupt first so it can finalize its stream, then is killed after a grace
// period. The microphone handle is released on every path, including a stop
// with zero captured data.
func (r *ExecRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	c := r.active
	r.active = nil
	r.mu.Unlock()

	if c == nil {
		return nil, nil
	}

	if err := c.cmd.Process.Signal(os.Interrupt); err != nil {
		// Already gone; the read goroutine will see EOF.
		r.logger.Debug("recorder interrupt: " + err.Error())
	}

	select {
	case <-c.done:
	case <-time.After(stopGrace):
		c.cancel()
		<-c.done
	}
	c.cancel()

	// Exit status is irrelevant: capture tools report non-zero on interrupt.
	_ = c.cmd.Wait()

	c.chunkMu.Lock()
	defer c.chunkMu.Unlock()
	var size int
	for _, chunk := range c.chunks {
		size += len(chunk)
	}
	audio := make([]byte, 0, size)
	for _, chunk := range c.chunks {
		audio = append(audio, chunk...)
	}
	return audio, nil
}
