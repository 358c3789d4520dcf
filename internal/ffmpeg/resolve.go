package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// EnvPath names the environment variable that pins the ffmpeg binary.
const EnvPath = "FFMPEG_PATH"

const binaryName = "ffmpeg"

// installHints maps GOOS to the advice printed when ffmpeg is missing.
var installHints = map[string]string{
	"darwin":  "Install it with Homebrew (brew install ffmpeg) or get a static build from https://evermeet.cx/ffmpeg/.",
	"linux":   "Install it with your package manager: apt install ffmpeg, dnf install ffmpeg or pacman -S ffmpeg.",
	"windows": "Install it with winget (winget install ffmpeg) or get a build from https://www.gyan.dev/ffmpeg/builds/.",
}

const genericHint = "Download a build from https://ffmpeg.org/download.html."

// Resolver finds the ffmpeg binary. The host lookups are plain functions so
// tests can replace them one at a time.
type Resolver struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
	goos     string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithGetenv replaces the environment lookup.
func WithGetenv(fn func(string) string) ResolverOption {
	return func(r *Resolver) { r.getenv = fn }
}

// WithLookPath replaces the PATH search.
func WithLookPath(fn func(string) (string, error)) ResolverOption {
	return func(r *Resolver) { r.lookPath = fn }
}

// WithStat replaces the file check applied to EnvPath.
func WithStat(fn func(string) (os.FileInfo, error)) ResolverOption {
	return func(r *Resolver) { r.stat = fn }
}

// WithPlatform sets the GOOS used to pick install hints.
func WithPlatform(goos string) ResolverOption {
	return func(r *Resolver) { r.goos = goos }
}

// NewResolver returns a Resolver reading the real environment.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		stat:     os.Stat,
		goos:     runtime.GOOS,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the ffmpeg path. A set EnvPath wins and must point at an
// existing file; PATH is only searched when it is unset.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if pinned := r.getenv(EnvPath); pinned != "" {
		if _, err := r.stat(pinned); err != nil {
			return "", fmt.Errorf("%w: %s=%q does not exist", ErrNotFound, EnvPath, pinned)
		}
		return pinned, nil
	}

	found, err := r.lookPath(binaryName)
	if err != nil {
		return "", fmt.Errorf("%w in PATH\n\n%s", ErrNotFound, r.hint())
	}
	return found, nil
}

func (r *Resolver) hint() string {
	h, ok := installHints[r.goos]
	if !ok {
		h = genericHint
	}
	return h + "\nSet " + EnvPath + " to use a binary outside PATH."
}
