package ffmpeg

import "errors"

// ErrNotFound indicates the FFmpeg binary could not be located.
var ErrNotFound = errors.New("ffmpeg not found")

// ErrExtractFailed indicates FFmpeg exited with an error while extracting audio.
var ErrExtractFailed = errors.New("audio extraction failed")

// ErrNoOutput indicates FFmpeg reported success but produced no audio file.
var ErrNoOutput = errors.New("ffmpeg produced no output")
