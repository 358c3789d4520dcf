package transcribe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-subtitle/internal/lang"
	"github.com/alnah/go-subtitle/internal/subtitle"
)

// MaxFileSize is the largest audio upload the transcription API accepts.
const MaxFileSize = 25 * 1024 * 1024

// Options configures a transcription request.
type Options struct {
	// Language hints the spoken language. Zero value means auto-detect.
	Language lang.Language

	// Prompt gives the model context: vocabulary, names, spelling.
	Prompt string
}

// Transcriber turns an audio file into timed text.
type Transcriber interface {
	// Transcribe uploads audioPath and returns its word and segment timings.
	Transcribe(ctx context.Context, audioPath string, opts Options) (Transcript, error)
}

// audioTranscriber is the subset of *openai.Client used here.
// Tests inject a mock.
type audioTranscriber interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Transcriber      = (*OpenAITranscriber)(nil)
	_ audioTranscriber = (*openai.Client)(nil)
)

// OpenAITranscriber transcribes audio with OpenAI's whisper-1 model,
// requesting verbose JSON with word and segment timestamps.
// Each call is a single request; failures are classified, not retried.
type OpenAITranscriber struct {
	client audioTranscriber
	model  string
}

// DefaultModel is used unless WithModel names another one.
const DefaultModel = openai.Whisper1

// TranscriberOption configures an OpenAITranscriber.
type TranscriberOption func(*OpenAITranscriber)

// WithModel overrides the transcription model. The model must support
// verbose_json with timestamp granularities.
func WithModel(model string) TranscriberOption {
	return func(t *OpenAITranscriber) {
		if model != "" {
			t.model = model
		}
	}
}

// NewOpenAITranscriberFromConfig builds the client from an API key and an
// optional base URL (empty means the public OpenAI endpoint).
func NewOpenAITranscriberFromConfig(apiKey, baseURL string, opts ...TranscriberOption) *OpenAITranscriber {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return newOpenAITranscriber(openai.NewClientWithConfig(cfg), opts...)
}

func newOpenAITranscriber(client audioTranscriber, opts ...TranscriberOption) *OpenAITranscriber {
	t := &OpenAITranscriber{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcribe uploads audioPath and converts the response to a Transcript.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string, opts Options) (Transcript, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Prompt:   opts.Prompt,
		Language: opts.Language.BaseCode(),
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularityWord,
			openai.TranscriptionTimestampGranularitySegment,
		},
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return Transcript{}, classifyError(err)
	}
	return fromResponse(resp), nil
}

// fromResponse copies the timing data out of the API response.
func fromResponse(resp openai.AudioResponse) Transcript {
	tr := Transcript{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}
	if len(resp.Words) > 0 {
		tr.Words = make([]subtitle.Segment, len(resp.Words))
		for i, w := range resp.Words {
			tr.Words[i] = subtitle.Segment{Start: w.Start, End: w.End, Text: w.Word}
		}
	}
	if len(resp.Segments) > 0 {
		tr.Segments = make([]subtitle.Segment, len(resp.Segments))
		for i, s := range resp.Segments {
			tr.Segments[i] = subtitle.Segment{Start: s.Start, End: s.End, Text: s.Text}
		}
	}
	return tr
}

// classifyError maps OpenAI API errors to sentinel errors.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			// Quota exhaustion needs user action; a plain rate limit does not.
			if strings.Contains(apiErr.Message, "quota") ||
				strings.Contains(apiErr.Message, "billing") {
				return fmt.Errorf("%s: %w", apiErr.Message, ErrQuotaExceeded)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, ErrRateLimit)
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrAuthFailed)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout,
			http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrTimeout)
		case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound,
			http.StatusRequestEntityTooLarge:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrBadRequest)
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%v: %w", reqErr, ErrAuthFailed)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", ErrTimeout)
	}

	return err
}
