package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/imbecility/socialdl/pkg/policy"
)

const DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Extractor is the capability the rest of the tool needs from yt-dlp.
type Extractor interface {
	// Probe fetches metadata only; nothing is written to disk.
	Probe(ctx context.Context, url string) (*Info, error)
	// Fetch downloads a single item according to plan.
	Fetch(ctx context.Context, req FetchRequest) (*Info, error)
	// Search runs a site search and returns a playlist-shaped Info.
	Search(ctx context.Context, query string, limit int) (*Info, error)
}

type FetchRequest struct {
	URL            string
	OutputTemplate string
	Plan           policy.Plan
}

// Runner drives the yt-dlp executable through go-ytdlp.
type Runner struct {
	// Path is the yt-dlp executable, usually the one resolved by EnsureBinary.
	Path string
	// FFmpegLocation is passed as --ffmpeg-location when set.
	FFmpegLocation string
	UserAgent      string
}

func (r *Runner) command() *ytdlp.Command {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		NoProgress()
	if r.Path != "" {
		cmd.SetExecutable(r.Path)
	}
	if r.FFmpegLocation != "" {
		cmd.FfmpegLocation(r.FFmpegLocation)
	}
	return cmd
}

func (r *Runner) Probe(ctx context.Context, url string) (*Info, error) {
	cmd := r.command().
		SkipDownload().
		DumpSingleJSON()
	return r.run(ctx, cmd, url)
}

func (r *Runner) Fetch(ctx context.Context, req FetchRequest) (*Info, error) {
	cmd := r.command().
		Output(req.OutputTemplate).
		Format(req.Plan.Format).
		DumpSingleJSON().
		NoSimulate()

	plan := req.Plan
	if !plan.Degraded {
		ua := r.UserAgent
		if ua == "" {
			ua = DesktopUserAgent
		}
		cmd.NoPlaylist().AddHeaders("User-Agent:" + ua)
	}
	if plan.MergeFormat != "" {
		cmd.MergeOutputFormat(plan.MergeFormat)
	}

	switch plan.Post.Kind {
	case policy.PostExtractAudio:
		cmd.ExtractAudio().
			AudioFormat(plan.Post.Codec).
			AudioQuality(plan.Post.Quality + "K")
	case policy.PostRemux:
		cmd.RemuxVideo(plan.Post.Codec)
	}

	return r.run(ctx, cmd, req.URL)
}

func (r *Runner) Search(ctx context.Context, query string, limit int) (*Info, error) {
	cmd := r.command().
		SkipDownload().
		NoPlaylist().
		DefaultSearch("ytsearch").
		DumpSingleJSON()
	return r.run(ctx, cmd, "ytsearch"+strconv.Itoa(limit)+":"+query)
}

func (r *Runner) run(ctx context.Context, cmd *ytdlp.Command, target string) (*Info, error) {
	slog.Debug("Running yt-dlp", "target", target)

	res, err := cmd.Run(ctx, target)
	if err != nil {
		execErr := &ExecError{Err: err}
		if res != nil {
			execErr.ExitCode = res.ExitCode
			execErr.Stderr = res.Stderr
		}
		slog.Debug("yt-dlp failed", "exit_code", execErr.ExitCode, "err", execErr)
		return nil, execErr
	}

	return decodeInfo([]byte(res.Stdout))
}

// decodeInfo picks the JSON document out of yt-dlp's stdout, ignoring stray lines.
func decodeInfo(stdout []byte) (*Info, error) {
	lines := bytes.Split(bytes.ReplaceAll(stdout, []byte("\r"), []byte("\n")), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if !bytes.HasPrefix(line, []byte("{")) {
			continue
		}
		var info Info
		if err := json.Unmarshal(line, &info); err != nil {
			return nil, fmt.Errorf("parse yt-dlp output: %w", err)
		}
		return &info, nil
	}

	if s := strings.TrimSpace(string(stdout)); s != "" {
		return nil, fmt.Errorf("%w: %.200s", ErrNoJSON, s)
	}
	return nil, ErrNoJSON
}
