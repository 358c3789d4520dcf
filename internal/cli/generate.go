package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-subtitle/internal/config"
	"github.com/alnah/go-subtitle/internal/ffmpeg"
	"github.com/alnah/go-subtitle/internal/format"
	"github.com/alnah/go-subtitle/internal/lang"
	"github.com/alnah/go-subtitle/internal/mediapath"
	"github.com/alnah/go-subtitle/internal/subtitle"
	"github.com/alnah/go-subtitle/internal/transcribe"
)

// audioFormats are sent to the transcription API without conversion.
var audioFormats = map[string]bool{
	".mp3":  true,
	".mpga": true,
	".mpeg": true,
	".m4a":  true,
	".wav":  true,
	".ogg":  true,
	".flac": true,
}

const (
	extSRT           = "srt"
	extAudio         = "mp3"
	extJSON          = "json"
	extText          = "txt"
	suffixTranscript = "-transcript"
	suffixTempAudio  = ".temp"
)

func supportedFormatsList() string {
	names := make([]string, 0, len(audioFormats))
	for ext := range audioFormats {
		names = append(names, ext[1:])
	}
	slices.Sort(names)
	return strings.Join(names, ", ") + " and video files (mp4, mov, mkv, webm, ...)"
}

// generateFlags mirrors the generate command line before validation.
type generateFlags struct {
	output      string
	granularity string
	language    string
	prompt      string
	model       string
	writeJSON   bool
	writeText   bool
	force       bool
	removeAudio bool
}

// generateOptions is what runGenerate acts on.
type generateOptions struct {
	inputPath   string
	output      string
	granularity subtitle.Granularity // zero means "ask config"
	language    lang.Language
	prompt      string
	model       string
	writeJSON   bool
	writeText   bool
	force       bool
	removeAudio bool
}

// GenerateCmd builds "subtitle generate".
func GenerateCmd(env *Env) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate <media-file>",
		Short: "Generate SRT subtitles for a video or audio file",
		Long: `Transcribe a media file with OpenAI and write SRT subtitles next to it.

A video is first reduced to a mono 16 kHz MP3 with ffmpeg. The SRT name
carries the cue granularity:

  talk.mp4  ->  talk.mp3, talk-words.srt

Granularity:
  word       one cue per word (default)
  segment    one cue per transcription segment
  sentence   words grouped into sentences

With --remove-audio the MP3 goes to talk.temp.mp3 and is deleted afterwards,
so an existing talk.mp3 is never touched.

Needs OPENAI_API_KEY (API_KEY also works). A .env file in the working
directory is loaded first.`,
		Example: `  subtitle generate talk.mp4
  subtitle generate talk.mp4 -g segment --txt
  subtitle generate "my talk.mov" -g sentence -l it --json
  subtitle generate podcast.mp3 -o podcast.srt --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseGenerateOptions(args[0], f)
			if err != nil {
				return err
			}
			return runGenerate(cmd, env, opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "SRT path (default: <input>-<granularity>s.srt)")
	fl.StringVarP(&f.granularity, "granularity", "g", "", "Cue granularity: word, segment, sentence (default: word)")
	fl.StringVarP(&f.language, "language", "l", "", "Spoken language as ISO 639-1, e.g. en, it, pt-BR")
	fl.StringVar(&f.prompt, "prompt", "", "Hint text for spelling and style")
	fl.StringVar(&f.model, "model", "", "Transcription model (default: "+transcribe.DefaultModel+")")
	fl.BoolVar(&f.writeJSON, "json", false, "Also write the raw transcript as <input>-transcript.json")
	fl.BoolVar(&f.writeText, "txt", false, "Also write the plain transcript as <input>-transcript.txt")
	fl.BoolVar(&f.force, "force", false, "Overwrite files that already exist")
	fl.BoolVar(&f.removeAudio, "remove-audio", false, "Extract to a temporary MP3 and delete it when done")

	return cmd
}

// parseGenerateOptions checks everything that does not touch the disk.
func parseGenerateOptions(inputPath string, f generateFlags) (generateOptions, error) {
	opts := generateOptions{
		inputPath:   inputPath,
		output:      f.output,
		prompt:      strings.TrimSpace(f.prompt),
		model:       strings.TrimSpace(f.model),
		writeJSON:   f.writeJSON,
		writeText:   f.writeText,
		force:       f.force,
		removeAudio: f.removeAudio,
	}

	if _, err := mediapath.Stem(inputPath); err != nil {
		return opts, err
	}
	if f.granularity != "" {
		g, err := subtitle.ParseGranularity(f.granularity)
		if err != nil {
			return opts, err
		}
		opts.granularity = g
	}
	l, err := lang.Parse(f.language)
	if err != nil {
		return opts, err
	}
	opts.language = l
	return opts, nil
}

// runGenerate checks input, config, outputs and the API key before any
// ffmpeg or network work starts.
func runGenerate(cmd *cobra.Command, env *Env, opts generateOptions) error {
	ctx := cmd.Context()
	out := newConsole(env.Stderr, env.Getenv)

	info, err := os.Stat(opts.inputPath)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrFileNotFound, opts.inputPath)
	case err != nil:
		return fmt.Errorf("cannot access input file: %w", err)
	case info.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, opts.inputPath)
	}

	isVideo := mediapath.IsVideo(opts.inputPath)
	if ext := strings.ToLower(filepath.Ext(opts.inputPath)); !isVideo && !audioFormats[ext] {
		return fmt.Errorf("unsupported format %q (supported: %s): %w",
			ext, supportedFormatsList(), ErrUnsupportedFormat)
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		out.Warnf("failed to load config: %v", err)
	}
	granularity, err := effectiveGranularity(opts.granularity, cfg)
	if err != nil {
		return err
	}

	paths, err := derivePaths(opts.inputPath, opts.output, cfg.OutputDir, granularity, opts.removeAudio)
	if err != nil {
		return err
	}
	if cfg.OutputDir != "" && opts.output == "" {
		if err := config.EnsureOutputDir(cfg.OutputDir); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
	}
	if !opts.force {
		for _, p := range paths.outputs(isVideo, opts.writeJSON, opts.writeText) {
			if outputExists(p) {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, p)
			}
		}
	}

	apiKey := config.APIKey(env.Getenv)
	if apiKey == "" {
		return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, config.EnvAPIKey)
	}

	audioPath := opts.inputPath
	if isVideo {
		audioPath = paths.audio
		ffmpegPath, err := env.FFmpegResolver.Resolve(ctx)
		if err != nil {
			return err
		}
		env.FFmpegResolver.CheckVersion(ctx, ffmpegPath)

		out.Progressf("Extracting audio...")
		out.Progressf("  %s", ffmpeg.CommandLine(ffmpegPath, ffmpeg.ExtractArgs(opts.inputPath, audioPath)))
		if opts.removeAudio {
			defer func() {
				if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
					out.Warnf("failed to remove %s: %v", audioPath, err)
				}
			}()
		}
		if err := env.AudioExtractor.ExtractAudio(ctx, ffmpegPath, opts.inputPath, audioPath); err != nil {
			return err
		}
	}

	audioInfo, err := os.Stat(audioPath)
	if err != nil {
		return fmt.Errorf("cannot access audio file: %w", err)
	}
	if isVideo {
		out.Progressf("Audio: %s (%s)", audioPath, format.Size(audioInfo.Size()))
	}
	if audioInfo.Size() > transcribe.MaxFileSize {
		return fmt.Errorf("%w: %s is %s (limit %s)", ErrFileTooLarge,
			audioPath, format.Size(audioInfo.Size()), format.Size(transcribe.MaxFileSize))
	}

	out.Progressf("Transcribing...")
	transcriber := env.TranscriberFactory.NewTranscriber(TranscriberSpec{
		APIKey:  apiKey,
		BaseURL: env.Getenv(config.EnvBaseURL),
		Model:   opts.model,
	})
	transcript, err := transcriber.Transcribe(ctx, audioPath, transcribe.Options{
		Language: opts.language,
		Prompt:   opts.prompt,
	})
	if err != nil {
		return err
	}

	if granularity != subtitle.BySegment {
		if _, estimated := transcript.TimedWords(); estimated {
			out.Warnf("no word timings returned, word times are estimated")
		}
	}
	segments, err := transcript.Select(granularity)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		out.Warnf("no speech detected, writing an empty subtitle file")
	}

	if err := writeOutput(paths.srt, opts.force, func(w io.Writer) error {
		return subtitle.Write(w, segments)
	}); err != nil {
		return err
	}

	if opts.writeJSON {
		data, err := transcript.JSON()
		if err != nil {
			return fmt.Errorf("encode transcript: %w", err)
		}
		if err := writeBytes(paths.json, opts.force, data); err != nil {
			return err
		}
		out.Progressf("Transcript: %s", paths.json)
	}
	if opts.writeText {
		if err := writeBytes(paths.text, opts.force, []byte(transcript.PlainText())); err != nil {
			return err
		}
		out.Progressf("Text: %s", paths.text)
	}

	out.Successf("Done: %s (%d %ss, %s)", paths.srt, len(segments), granularity,
		format.Duration(format.Seconds(transcript.Duration)))
	return nil
}

// effectiveGranularity prefers the flag, then config, then the default.
func effectiveGranularity(flag subtitle.Granularity, cfg config.Config) (subtitle.Granularity, error) {
	if !flag.IsZero() || cfg.Granularity == "" {
		return flag.OrDefault(), nil
	}
	g, err := subtitle.ParseGranularity(cfg.Granularity)
	if err != nil {
		return g, fmt.Errorf("config %s: %w", config.KeyGranularity, err)
	}
	return g, nil
}

func writeBytes(path string, force bool, data []byte) error {
	return writeOutput(path, force, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// generatePaths are the files a generate run reads or writes.
type generatePaths struct {
	audio string
	srt   string
	json  string
	text  string
}

// outputs lists the paths that must not exist unless --force is given.
func (p generatePaths) outputs(video, withJSON, withText bool) []string {
	files := []string{p.srt}
	if video {
		files = append(files, p.audio)
	}
	if withJSON {
		files = append(files, p.json)
	}
	if withText {
		files = append(files, p.text)
	}
	return files
}

// derivePaths places the extracted MP3 next to the input and the SRT next to
// the input or in outputDir. The JSON and text transcripts follow the SRT.
func derivePaths(inputPath, output, outputDir string, g subtitle.Granularity, tempAudio bool) (generatePaths, error) {
	var p generatePaths

	audioSuffix := ""
	if tempAudio {
		audioSuffix = suffixTempAudio
	}
	audio, err := mediapath.SiblingPath(inputPath, extAudio, audioSuffix)
	if err != nil {
		return p, err
	}
	p.audio = audio

	srt, err := mediapath.SiblingPath(inputPath, extSRT, g.Suffix())
	if err != nil {
		return p, err
	}
	p.srt = config.ResolveOutputPath(config.ExpandPath(output), config.ExpandPath(outputDir), srt)

	dir, base := filepath.Dir(p.srt), filepath.Base(inputPath)
	for ext, dst := range map[string]*string{extJSON: &p.json, extText: &p.text} {
		name, err := mediapath.SiblingPath(base, ext, suffixTranscript)
		if err != nil {
			return p, err
		}
		*dst = filepath.Join(dir, name)
	}
	return p, nil
}
