package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/alnah/go-subtitle/internal/mediapath"
)

// Extraction target: mono 16 kHz MP3, small enough to upload and plenty for speech.
const (
	audioCodec      = "libmp3lame"
	audioSampleRate = "16000"
	audioChannels   = "1"
)

// diagnosticLines is how much ffmpeg output an extraction error carries.
const diagnosticLines = 10

// Runner starts a process and returns everything it printed.
type Runner func(ctx context.Context, name string, args []string) (string, error)

// Executor runs ffmpeg with a discrete argument list. No shell is involved.
type Executor struct {
	run Runner
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRunner replaces process execution.
func WithRunner(run Runner) ExecutorOption {
	return func(e *Executor) { e.run = run }
}

// NewExecutor returns an Executor that starts real processes.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{run: runCombined}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes ffmpegPath with args and returns its combined stdout and stderr.
func (e *Executor) Run(ctx context.Context, ffmpegPath string, args []string) (string, error) {
	return e.run(ctx, ffmpegPath, args)
}

// ExtractArgs is the argument list that writes the audio of src to dst as
// MP3, replacing dst.
func ExtractArgs(src, dst string) []string {
	return []string{
		"-i", src,
		"-vn",
		"-acodec", audioCodec,
		"-ar", audioSampleRate,
		"-ac", audioChannels,
		"-y", dst,
	}
}

// ExtractAudio writes the audio track of src to dst. A failing ffmpeg gives
// ErrExtractFailed with the end of its output; a missing or empty dst gives
// ErrNoOutput. Cancellation returns the context error.
func (e *Executor) ExtractAudio(ctx context.Context, ffmpegPath, src, dst string) error {
	out, err := e.run(ctx, ffmpegPath, ExtractArgs(src, dst))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if last := lastLines(out, diagnosticLines); last != "" {
			return fmt.Errorf("%w: %v\n%s", ErrExtractFailed, err, last)
		}
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	info, err := os.Stat(dst)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNoOutput, dst)
	case err != nil:
		return fmt.Errorf("stat extracted audio: %w", err)
	case info.Size() == 0:
		return fmt.Errorf("%w: %s is empty", ErrNoOutput, dst)
	}
	return nil
}

// CommandLine shows ffmpegPath and args as one line with spaces escaped.
// It is for display; nothing executes it.
func CommandLine(ffmpegPath string, args []string) string {
	var b strings.Builder
	b.WriteString(mediapath.EscapeForShell(ffmpegPath))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(mediapath.EscapeForShell(arg))
	}
	return b.String()
}

// lastLines keeps the final n lines of out, trimmed.
func lastLines(out string, n int) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// runCombined captures stdout and stderr in one buffer: "-version" prints
// to stdout while conversion diagnostics go to stderr.
func runCombined(ctx context.Context, name string, args []string) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}
