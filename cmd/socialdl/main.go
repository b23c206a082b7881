package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/imbecility/socialdl/pkg/downloader"
	"github.com/imbecility/socialdl/pkg/extractor"
	"github.com/imbecility/socialdl/pkg/gateway"
	"github.com/imbecility/socialdl/pkg/models"
)

type app interface {
	Search(ctx context.Context, query string, limit int) (*models.SearchResponse, error)
	Play(ctx context.Context, req gateway.PlayRequest) (*models.Outcome, error)
	Download(ctx context.Context, req downloader.Request) (*models.Outcome, error)
}

var newApp = func(ctx context.Context, cfg gateway.Config) (app, error) {
	return gateway.New(ctx, cfg)
}

// command runs against a ready app and returns the document to print and
// whether it represents success.
type command func(ctx context.Context, a app) (any, bool, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code:
//
//	socialdl [-debug] [-yt-dlp path] [-ffmpeg path] [-no-install] search|play|download [flags]
//
// Every path writes exactly one JSON line to stdout, except -h, which prints
// usage to stderr and returns 0.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = emit(stdout, models.Failure("Unexpected error", fmt.Sprint(r)), false)
		}
	}()

	cfg := gateway.DefaultConfig()
	cfg.LoadEnv()

	global := flag.NewFlagSet("socialdl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	global.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging on stderr")
	global.StringVar(&cfg.YtdlpPath, "yt-dlp", cfg.YtdlpPath, "Path to yt-dlp binary")
	global.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "Path to ffmpeg binary")
	global.BoolVar(&cfg.NoInstall, "no-install", cfg.NoInstall, "Do not download yt-dlp when it is missing")

	if err := global.Parse(args); err != nil {
		return usageError(stdout, stderr, err)
	}

	rest := global.Args()
	if len(rest) == 0 {
		return usageError(stdout, stderr, errors.New("missing command: search, play or download"))
	}

	cmd, err := parseCommand(rest[0], rest[1:], cfg.OutputDir)
	if err != nil {
		return usageError(stdout, stderr, err)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		if errors.Is(err, extractor.ErrNotInstalled) {
			return emit(stdout, models.Failure(
				"yt-dlp is not installed and automatic installation failed. Please install yt-dlp or set SOCIALDL_YTDLP_PATH",
				err.Error(),
			), false)
		}
		return emit(stdout, models.Failure("Unexpected error", err.Error()), false)
	}

	doc, ok, err := cmd(ctx, a)
	if err != nil {
		slog.Error("Command failed", "command", rest[0], "err", err)
		return emit(stdout, models.Failure("Unexpected error", err.Error()), false)
	}

	slog.Debug("Command finished", "command", rest[0], "ok", ok)
	return emit(stdout, doc, ok)
}

func parseCommand(name string, args []string, defaultOutput string) (command, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	switch name {
	case "search":
		query := fs.String("query", "", "Search query")
		limit := fs.Int("limit", 5, "Number of results")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if *query == "" {
			return nil, errors.New("--query is required")
		}
		if *limit < 1 {
			return nil, errors.New("--limit must be at least 1")
		}
		return func(ctx context.Context, a app) (any, bool, error) {
			res, err := a.Search(ctx, *query, *limit)
			return res, err == nil, err
		}, nil

	case "play":
		query := fs.String("query", "", "Song query")
		index := fs.Int("index", 1, "Pick Nth result (1-based)")
		audioFormat := fs.String("audio-format", "mp3", "mp3 or m4a")
		output := fs.String("output", defaultOutput, "Output directory")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if *query == "" {
			return nil, errors.New("--query is required")
		}
		if err := oneOf("audio-format", *audioFormat, "mp3", "m4a"); err != nil {
			return nil, err
		}
		req := gateway.PlayRequest{Query: *query, Index: *index, OutputDir: *output, AudioFormat: *audioFormat}
		return func(ctx context.Context, a app) (any, bool, error) {
			out, err := a.Play(ctx, req)
			return out, out.OK(), err
		}, nil

	case "download":
		url := fs.String("url", "", "Media URL or YouTube video ID")
		kind := fs.String("kind", "", "audio or video (default: audio for YouTube, video otherwise)")
		audioFormat := fs.String("audio-format", "mp3", "mp3 or m4a")
		videoFormat := fs.String("video-format", "mp4", "mp4")
		output := fs.String("output", defaultOutput, "Output directory")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if *url == "" {
			return nil, errors.New("--url is required")
		}
		if *kind != "" {
			if err := oneOf("kind", *kind, string(models.KindAudio), string(models.KindVideo)); err != nil {
				return nil, err
			}
		}
		if err := oneOf("audio-format", *audioFormat, "mp3", "m4a"); err != nil {
			return nil, err
		}
		if err := oneOf("video-format", *videoFormat, "mp4"); err != nil {
			return nil, err
		}
		req := downloader.Request{
			URL:         *url,
			Kind:        models.Kind(*kind),
			OutputDir:   *output,
			AudioFormat: *audioFormat,
			VideoFormat: *videoFormat,
		}
		return func(ctx context.Context, a app) (any, bool, error) {
			out, err := a.Download(ctx, req)
			return out, out.OK(), err
		}, nil
	}

	return nil, fmt.Errorf("unknown command %q: use search, play or download", name)
}

func oneOf(name, value string, choices ...string) error {
	if slices.Contains(choices, value) {
		return nil
	}
	return fmt.Errorf("invalid --%s %q (choose from %s)", name, value, strings.Join(choices, ", "))
}

func usageError(stdout, stderr io.Writer, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		printUsage(stderr)
		return 0
	}
	return emit(stdout, models.Failure("Invalid arguments", err.Error()), false)
}

// emit writes doc as the single JSON line of the run and returns the exit code.
func emit(w io.Writer, doc any, ok bool) int {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		slog.Error("Failed to encode result", "err", err)
		return 1
	}
	if ok {
		return 0
	}
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `socialdl - search and download media from YouTube, TikTok, Instagram and Facebook

Usage:
  socialdl [global flags] search --query <text> [--limit 5]
  socialdl [global flags] play --query <text> [--index 1] [--audio-format mp3|m4a] [--output downloads]
  socialdl [global flags] download --url <url|id> [--kind audio|video] [--audio-format mp3|m4a] [--video-format mp4] [--output downloads]

Global flags:
  -debug        Enable debug logging on stderr
  -yt-dlp       Path to yt-dlp binary
  -ffmpeg       Path to ffmpeg binary
  -no-install   Do not download yt-dlp when it is missing

Every command prints exactly one JSON object on stdout. Exit code is 0 only when status is "ok".
`)
}
