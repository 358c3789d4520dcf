package cli

import (
	"context"
	"os"
	"slices"
	"sync"

	"github.com/alnah/go-subtitle/internal/config"
	"github.com/alnah/go-subtitle/internal/subtitle"
	"github.com/alnah/go-subtitle/internal/transcribe"
)

// callLog records the arguments of every call to one mock method.
type callLog[T any] struct {
	mu      sync.Mutex
	entries []T
}

func (l *callLog[T]) record(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, v)
}

func (l *callLog[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// mockFFmpegResolver finds ffmpeg at /usr/bin/ffmpeg unless ResolveFunc says otherwise.
type mockFFmpegResolver struct {
	ResolveFunc func(ctx context.Context) (string, error)

	resolves callLog[struct{}]
	checks   callLog[string]
}

func (m *mockFFmpegResolver) Resolve(ctx context.Context) (string, error) {
	m.resolves.record(struct{}{})
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx)
	}
	return "/usr/bin/ffmpeg", nil
}

func (m *mockFFmpegResolver) CheckVersion(_ context.Context, ffmpegPath string) {
	m.checks.record(ffmpegPath)
}

func (m *mockFFmpegResolver) ResolveCalls() int { return len(m.resolves.snapshot()) }

type extractCall struct {
	FFmpegPath, Src, Dst string
}

// mockAudioExtractor writes a stub MP3 to dst unless ExtractAudioFunc is set.
type mockAudioExtractor struct {
	ExtractAudioFunc func(ctx context.Context, ffmpegPath, src, dst string) error

	log callLog[extractCall]
}

func (m *mockAudioExtractor) ExtractAudio(ctx context.Context, ffmpegPath, src, dst string) error {
	m.log.record(extractCall{FFmpegPath: ffmpegPath, Src: src, Dst: dst})
	if m.ExtractAudioFunc != nil {
		return m.ExtractAudioFunc(ctx, ffmpegPath, src, dst)
	}
	return os.WriteFile(dst, []byte("ID3 stub"), 0644)
}

func (m *mockAudioExtractor) Calls() []extractCall { return m.log.snapshot() }

// mockConfigLoader returns an empty config unless LoadFunc is set.
type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

// mockTranscriberFactory hands out transcriber and records each spec.
type mockTranscriberFactory struct {
	transcriber *mockTranscriber

	specs callLog[TranscriberSpec]
}

func (m *mockTranscriberFactory) NewTranscriber(spec TranscriberSpec) transcribe.Transcriber {
	m.specs.record(spec)
	if m.transcriber == nil {
		return &mockTranscriber{}
	}
	return m.transcriber
}

func (m *mockTranscriberFactory) NewTranscriberCalls() []TranscriberSpec { return m.specs.snapshot() }

type transcribeCall struct {
	AudioPath string
	Opts      transcribe.Options
}

// mockTranscriber returns sampleTranscript unless TranscribeFunc is set.
type mockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audioPath string, opts transcribe.Options) (transcribe.Transcript, error)

	log callLog[transcribeCall]
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioPath string, opts transcribe.Options) (transcribe.Transcript, error) {
	m.log.record(transcribeCall{AudioPath: audioPath, Opts: opts})
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audioPath, opts)
	}
	return sampleTranscript(), nil
}

func (m *mockTranscriber) TranscribeCalls() []transcribeCall { return m.log.snapshot() }

// sampleTranscript holds two sentences with word and segment timings.
func sampleTranscript() transcribe.Transcript {
	return transcribe.Transcript{
		Text:     "Hello there. Bye!",
		Language: "english",
		Duration: 2.5,
		Words: []subtitle.Segment{
			{Start: 0.0, End: 0.5, Text: "Hello"},
			{Start: 0.5, End: 1.0, Text: "there."},
			{Start: 1.5, End: 2.5, Text: "Bye!"},
		},
		Segments: []subtitle.Segment{
			{Start: 0.0, End: 1.0, Text: " Hello there."},
			{Start: 1.5, End: 2.5, Text: " Bye!"},
		},
	}
}
