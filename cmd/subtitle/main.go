package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-subtitle/internal/cli"
	"github.com/alnah/go-subtitle/internal/config"
	"github.com/alnah/go-subtitle/internal/ffmpeg"
	"github.com/alnah/go-subtitle/internal/format"
	"github.com/alnah/go-subtitle/internal/lang"
	"github.com/alnah/go-subtitle/internal/mediapath"
	"github.com/alnah/go-subtitle/internal/subtitle"
	"github.com/alnah/go-subtitle/internal/transcribe"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

const (
	ExitOK            = 0
	ExitGeneral       = 1
	ExitUsage         = 2
	ExitSetup         = 3
	ExitValidation    = 4
	ExitTranscription = 5
	ExitExtraction    = 6
	ExitInterrupt     = 130
)

func main() {
	_ = godotenv.Load() // optional .env in the working directory

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd(cli.DefaultEnv())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(exitCode(err))
	}
}

func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "subtitle",
		Short:   "Generate SRT subtitles from video and audio files",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Errors are printed by main with the matching exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.GenerateCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))
	return rootCmd
}

// exitClasses groups sentinel errors by exit code. Classes are tried in order.
var exitClasses = []struct {
	code    int
	targets []error
}{
	{ExitSetup, []error{ffmpeg.ErrNotFound, cli.ErrAPIKeyMissing,
		config.ErrNotDirectory, config.ErrNotWritable, config.ErrInvalidSyntax}},
	{ExitValidation, []error{mediapath.ErrInvalidPath, format.ErrInvalidTimestamp,
		subtitle.ErrInvalidGranularity, lang.ErrInvalid,
		cli.ErrUnsupportedFormat, cli.ErrFileNotFound, cli.ErrOutputExists, cli.ErrFileTooLarge,
		config.ErrUnknownKey, config.ErrInvalidValue, config.ErrInvalidKey}},
	{ExitTranscription, []error{transcribe.ErrRateLimit, transcribe.ErrQuotaExceeded,
		transcribe.ErrTimeout, transcribe.ErrAuthFailed, transcribe.ErrBadRequest}},
	{ExitExtraction, []error{ffmpeg.ErrExtractFailed, ffmpeg.ErrNoOutput}},
}

// exitCode maps err to the process exit status. Sentinels are matched
// before cobra's untyped usage errors, whose patterns can also occur in
// wrapped messages (a file named "accepts 2.mp4", an API "invalid argument").
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}
	for _, class := range exitClasses {
		if isAny(err, class.targets...) {
			return class.code
		}
	}
	if isCobraUsageError(err) {
		return ExitUsage
	}
	return ExitGeneral
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// cobraUsageErrorPatterns match the messages of cobra's flag and argument
// checks, which are plain fmt errors.
var cobraUsageErrorPatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"if any flags in the group",
	"accepts ",
	"requires at least",
	"requires at most",
}

func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
