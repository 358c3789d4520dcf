package transcribe

import "errors"

// Sentinel errors for transcription API failures.
// Provider errors are classified into these at the client boundary;
// callers check them with errors.Is.
var (
	// ErrRateLimit indicates the API rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the account quota is exhausted (billing issue).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out or the server failed transiently.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates the API key was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) not otherwise classified,
	// such as an unsupported or oversized audio file.
	ErrBadRequest = errors.New("bad request")
)
