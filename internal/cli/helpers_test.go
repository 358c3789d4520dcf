package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/alnah/go-subtitle/internal/config"
)

// syncBuffer is a strings.Builder that parallel writers can share.
type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

type testMocks struct {
	ffmpegResolver *mockFFmpegResolver
	extractor      *mockAudioExtractor
	factory        *mockTranscriberFactory
	transcriber    *mockTranscriber
	stderr         *syncBuffer
	stdout         *syncBuffer
}

// testEnv is an Env where every collaborator is a mock and OPENAI_API_KEY is set.
func testEnv() (*Env, *testMocks) {
	m := &testMocks{
		ffmpegResolver: &mockFFmpegResolver{},
		extractor:      &mockAudioExtractor{},
		transcriber:    &mockTranscriber{},
		stderr:         &syncBuffer{},
		stdout:         &syncBuffer{},
	}
	m.factory = &mockTranscriberFactory{transcriber: m.transcriber}

	return &Env{
		Stderr:             m.stderr,
		Stdout:             m.stdout,
		Getenv:             staticEnv(map[string]string{config.EnvAPIKey: "test-openai-key"}),
		FFmpegResolver:     m.ffmpegResolver,
		AudioExtractor:     m.extractor,
		ConfigLoader:       &mockConfigLoader{},
		TranscriberFactory: m.factory,
	}, m
}

func staticEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

// createTestMediaFile writes a stub file called name into a fresh temp dir.
func createTestMediaFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("stub media"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return p
}

func configWith(cfg config.Config) *mockConfigLoader {
	return &mockConfigLoader{LoadFunc: func() (config.Config, error) { return cfg, nil }}
}

// createGenerateCmd stands in for the command cobra hands to RunE.
func createGenerateCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	return cmd
}

// parseFlags validates f for inputPath or fails the test.
func parseFlags(t *testing.T, inputPath string, f generateFlags) generateOptions {
	t.Helper()
	opts, err := parseGenerateOptions(inputPath, f)
	if err != nil {
		t.Fatalf("parseGenerateOptions(%q) unexpected error: %v", inputPath, err)
	}
	return opts
}

// mustParseGenerateOptions covers the common flags: output, granularity, language.
func mustParseGenerateOptions(t *testing.T, inputPath, output, granularity, language string) generateOptions {
	t.Helper()
	return parseFlags(t, inputPath, generateFlags{output: output, granularity: granularity, language: language})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile(%q) unexpected error: %v", path, err)
	}
	return string(data)
}

// runOn runs the generate pipeline on opts with a background context.
func runOn(env *Env, opts generateOptions) error {
	return runGenerate(createGenerateCmd(context.Background()), env, opts)
}
