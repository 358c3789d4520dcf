package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// minMajorVersion is the oldest release trusted with the extraction flags.
const minMajorVersion = 4

// VersionChecker warns when the installed ffmpeg is older than minMajorVersion.
type VersionChecker struct {
	exec *Executor
	warn io.Writer
}

// VersionOption configures a VersionChecker.
type VersionOption func(*VersionChecker)

// WithVersionExecutor sets the executor used to run "ffmpeg -version".
func WithVersionExecutor(e *Executor) VersionOption {
	return func(c *VersionChecker) { c.exec = e }
}

// WithVersionStderr sets where the warning goes.
func WithVersionStderr(w io.Writer) VersionOption {
	return func(c *VersionChecker) { c.warn = w }
}

// NewVersionChecker returns a checker running the real binary and warning on stderr.
func NewVersionChecker(opts ...VersionOption) *VersionChecker {
	c := &VersionChecker{exec: NewExecutor(), warn: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reads the major version of ffmpegPath. ok is false when the banner
// can't be read; that is never fatal since extraction reports its own errors.
func (c *VersionChecker) Check(ctx context.Context, ffmpegPath string) (major int, ok bool) {
	banner, err := c.exec.Run(ctx, ffmpegPath, []string{"-version"})
	if err != nil && banner == "" {
		return 0, false
	}

	major, ok = parseMajorVersion(banner)
	if ok && major < minMajorVersion {
		fmt.Fprintf(c.warn, "Warning: ffmpeg %d is older than %d, audio extraction may fail\n",
			major, minMajorVersion)
	}
	return major, ok
}

// parseMajorVersion reads "ffmpeg version 6.1.1" or "ffmpeg version n6.1.1"
// from the first line of the banner.
func parseMajorVersion(banner string) (int, bool) {
	first, _, _ := strings.Cut(banner, "\n")
	rest, found := strings.CutPrefix(strings.TrimSpace(first), "ffmpeg version ")
	if !found {
		return 0, false
	}
	rest = strings.TrimPrefix(rest, "n")

	var major int
	if _, err := fmt.Sscanf(rest, "%d", &major); err != nil {
		return 0, false
	}
	return major, true
}
