// Package mediapath derives output file paths from a source media path.
//
// All functions are string transformations. None of them touch the
// filesystem, so they never fail because a file is missing.
package mediapath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// videoExtensions lists container extensions that need audio extraction
// before transcription.
var videoExtensions = map[string]bool{
	".mov":  true,
	".mp4":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
	".wmv":  true,
	".m4v":  true,
	".3gp":  true,
}

// Stem returns the base name of source up to its first ".".
// Multi-dot names are truncated: "episode.S01E02.mp4" has stem "episode".
func Stem(source string) (string, error) {
	_, stem, err := split(source)
	return stem, err
}

// SiblingPath returns the path of a file next to source, named
// stem + suffix + "." + ext. The directory of source is kept as written.
//
// Examples:
//
//	SiblingPath("a/b/video.mp4", "mp3", "")       -> "a/b/video.mp3"
//	SiblingPath("video.mp4", "srt", "-words")     -> "video-words.srt"
func SiblingPath(source, ext, suffix string) (string, error) {
	dir, stem, err := split(source)
	if err != nil {
		return "", err
	}
	return dir + stem + suffix + "." + ext, nil
}

// split returns the directory (with its trailing separator, or "") and the
// first-dot stem of source.
func split(source string) (dir, stem string, err error) {
	if source == "" {
		return "", "", fmt.Errorf("empty path: %w", ErrInvalidPath)
	}

	dir, base := filepath.Split(source)
	if base == "" {
		return "", "", fmt.Errorf("no file name in %q: %w", source, ErrInvalidPath)
	}

	stem, _, _ = strings.Cut(base, ".")
	if stem == "" {
		return "", "", fmt.Errorf("no stem in %q: %w", source, ErrInvalidPath)
	}

	return dir, stem, nil
}

// EscapeForShell backslash-escapes every space in path.
// Quotes, "$", ";" and other metacharacters are left untouched, so the
// result is only fit for display or for trusted paths.
func EscapeForShell(path string) string {
	return strings.ReplaceAll(path, " ", `\ `)
}

// IsVideo reports whether path has a known video container extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
