package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/imbecility/socialdl/pkg/client"
	"github.com/imbecility/socialdl/pkg/downloader"
	"github.com/imbecility/socialdl/pkg/extractor"
	"github.com/imbecility/socialdl/pkg/ffmpeg"
	"github.com/imbecility/socialdl/pkg/logger"
	"github.com/imbecility/socialdl/pkg/search"
)

// Config represents the configuration for gateway initialization.
type Config struct {
	// OutputDir is the default folder for downloads (defaults to "downloads").
	OutputDir string
	// YtdlpPath is the yt-dlp executable to try first (defaults to "yt-dlp").
	YtdlpPath string
	// FFmpegPath is the transcoder looked up on the search path (defaults to "ffmpeg").
	FFmpegPath string
	// InstallDir receives an auto-installed yt-dlp (defaults to the user cache dir).
	InstallDir string
	// NoInstall disables downloading yt-dlp when it is missing.
	NoInstall bool
	// HTTPTimeoutSec bounds installer and metadata requests (defaults to 300).
	HTTPTimeoutSec int
	// Debug enables verbose logging on stderr.
	Debug bool
}

func DefaultConfig() Config {
	cfg := Config{
		OutputDir:      "downloads",
		YtdlpPath:      "yt-dlp",
		FFmpegPath:     ffmpeg.DefaultBinary,
		HTTPTimeoutSec: 300,
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.InstallDir = filepath.Join(dir, "socialdl")
	}
	return cfg
}

// LoadEnv overrides the config with SOCIALDL_* environment variables.
func (c *Config) LoadEnv() {
	if v := os.Getenv("SOCIALDL_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("SOCIALDL_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("SOCIALDL_FFMPEG_PATH"); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv("SOCIALDL_INSTALL_DIR"); v != "" {
		c.InstallDir = v
	}
	if v := os.Getenv("SOCIALDL_NO_INSTALL"); v != "" {
		c.NoInstall = v == "true" || v == "1"
	}
	if v := os.Getenv("SOCIALDL_DEBUG"); v != "" {
		c.Debug = v == "true" || v == "1"
	}
}

// New creates a ready-to-use Service. It fails only when no working yt-dlp can
// be found or installed.
func New(ctx context.Context, cfg Config) (*Service, error) {
	logger.SetupGlobal(cfg.Debug, false)
	slog.SetDefault(slog.Default().With("run", uuid.NewString()))

	def := DefaultConfig()
	if cfg.YtdlpPath == "" {
		cfg.YtdlpPath = def.YtdlpPath
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = def.FFmpegPath
	}
	if cfg.HTTPTimeoutSec <= 0 {
		cfg.HTTPTimeoutSec = def.HTTPTimeoutSec
	}

	httpClient, err := client.New(cfg.HTTPTimeoutSec)
	if err != nil {
		return nil, fmt.Errorf("failed to init http client: %w", err)
	}

	installDir := cfg.InstallDir
	if cfg.NoInstall {
		installDir = ""
	}
	ytdlpPath, err := extractor.EnsureBinary(ctx, httpClient, cfg.YtdlpPath, installDir)
	if err != nil {
		return nil, err
	}

	transcoder := ffmpeg.Detect(cfg.FFmpegPath)
	if !transcoder.Available {
		slog.Warn("FFmpeg not found, outputs keep their source container", "requested", cfg.FFmpegPath)
	}

	runner := &extractor.Runner{
		Path:           ytdlpPath,
		FFmpegLocation: transcoder.Location(),
		UserAgent:      extractor.DesktopUserAgent,
	}

	dl := &downloader.Downloader{
		Extractor:  runner,
		Transcoder: transcoder,
		Client:     httpClient,
		TagAudio:   true,
	}

	return NewService(&search.Searcher{Extractor: runner}, dl), nil
}
