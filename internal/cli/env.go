package cli

import (
	"context"
	"io"
	"os"

	"github.com/alnah/go-subtitle/internal/config"
	"github.com/alnah/go-subtitle/internal/ffmpeg"
	"github.com/alnah/go-subtitle/internal/transcribe"
)

// Env is what commands reach outside their arguments: output streams, the
// process environment and the external tools. Commands never call os or
// the collaborator packages directly, so tests swap any of them.
type Env struct {
	Stderr io.Writer
	Stdout io.Writer
	Getenv func(string) string

	FFmpegResolver     FFmpegResolver
	AudioExtractor     AudioExtractor
	ConfigLoader       ConfigLoader
	TranscriberFactory TranscriberFactory
}

// FFmpegResolver locates ffmpeg and warns about outdated builds.
type FFmpegResolver interface {
	Resolve(ctx context.Context) (string, error)
	CheckVersion(ctx context.Context, ffmpegPath string)
}

// AudioExtractor writes the audio track of src to dst.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, ffmpegPath, src, dst string) error
}

// ConfigLoader reads persisted settings.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// TranscriberSpec is what a TranscriberFactory needs to build a client.
// Empty BaseURL and Model select the public endpoint and whisper-1.
type TranscriberSpec struct {
	APIKey  string
	BaseURL string
	Model   string
}

// TranscriberFactory builds a transcriber once credentials are known.
type TranscriberFactory interface {
	NewTranscriber(spec TranscriberSpec) transcribe.Transcriber
}

// EnvOption overrides one field of the default Env.
type EnvOption func(*Env)

// WithStderr routes status messages to w.
func WithStderr(w io.Writer) EnvOption { return func(e *Env) { e.Stderr = w } }

// WithStdout routes command results to w.
func WithStdout(w io.Writer) EnvOption { return func(e *Env) { e.Stdout = w } }

// WithGetenv replaces environment lookups.
func WithGetenv(fn func(string) string) EnvOption { return func(e *Env) { e.Getenv = fn } }

// WithFFmpegResolver replaces ffmpeg discovery.
func WithFFmpegResolver(r FFmpegResolver) EnvOption { return func(e *Env) { e.FFmpegResolver = r } }

// WithAudioExtractor replaces audio extraction.
func WithAudioExtractor(x AudioExtractor) EnvOption { return func(e *Env) { e.AudioExtractor = x } }

// WithConfigLoader replaces settings loading.
func WithConfigLoader(l ConfigLoader) EnvOption { return func(e *Env) { e.ConfigLoader = l } }

// WithTranscriberFactory replaces transcriber construction.
func WithTranscriberFactory(f TranscriberFactory) EnvOption {
	return func(e *Env) { e.TranscriberFactory = f }
}

// DefaultEnv wires the real process streams and collaborators.
func DefaultEnv() *Env {
	return &Env{
		Stderr:             os.Stderr,
		Stdout:             os.Stdout,
		Getenv:             os.Getenv,
		FFmpegResolver:     systemFFmpeg{warn: os.Stderr},
		AudioExtractor:     ffmpeg.NewExecutor(),
		ConfigLoader:       fileConfig{},
		TranscriberFactory: openAIFactory{},
	}
}

// NewEnv is DefaultEnv with opts applied in order.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

type systemFFmpeg struct {
	warn io.Writer
}

func (systemFFmpeg) Resolve(ctx context.Context) (string, error) {
	return ffmpeg.NewResolver().Resolve(ctx)
}

func (s systemFFmpeg) CheckVersion(ctx context.Context, ffmpegPath string) {
	_, _ = ffmpeg.NewVersionChecker(ffmpeg.WithVersionStderr(s.warn)).Check(ctx, ffmpegPath)
}

type fileConfig struct{}

func (fileConfig) Load() (config.Config, error) { return config.Load() }

type openAIFactory struct{}

func (openAIFactory) NewTranscriber(spec TranscriberSpec) transcribe.Transcriber {
	return transcribe.NewOpenAITranscriberFromConfig(spec.APIKey, spec.BaseURL, transcribe.WithModel(spec.Model))
}

var (
	_ FFmpegResolver     = systemFFmpeg{}
	_ AudioExtractor     = (*ffmpeg.Executor)(nil)
	_ ConfigLoader       = fileConfig{}
	_ TranscriberFactory = openAIFactory{}
)
