package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/imbecility/socialdl/pkg/client"
	"github.com/imbecility/socialdl/pkg/extractor"
	"github.com/imbecility/socialdl/pkg/ffmpeg"
	"github.com/imbecility/socialdl/pkg/metadata"
	"github.com/imbecility/socialdl/pkg/models"
	"github.com/imbecility/socialdl/pkg/platform"
	"github.com/imbecility/socialdl/pkg/policy"
)

const ActionDownload = "download"

type Downloader struct {
	Extractor  extractor.Extractor
	Transcoder ffmpeg.Transcoder
	// Client is used for title lookups when yt-dlp returns none. Optional.
	Client client.HTTPClient
	// TagAudio enables ID3 tagging of mp3 outputs.
	TagAudio bool
}

type Request struct {
	URL         string
	Kind        models.Kind
	OutputDir   string
	AudioFormat string
	VideoFormat string
}

// Download probes, fetches and describes a single URL. Media problems come back
// as an error Outcome; the returned error is reserved for failures outside the
// fetch itself, such as an unusable output directory.
func (d *Downloader) Download(ctx context.Context, req Request) (*models.Outcome, error) {
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	plat := platform.Detect(req.URL)
	log := slog.With("url", req.URL, "platform", plat, "kind", req.Kind)

	report := d.Probe(ctx, req.URL)
	if !report.Available {
		log.Debug("No usable formats", "total", report.TotalFormats, "err", report.Error)
		out := models.Failure(unavailableMessage(report), "")
		out.Action = ActionDownload
		out.Details = &report
		return out, nil
	}

	plan := policy.Primary(policy.Input{
		Platform:    plat,
		Kind:        req.Kind,
		AudioFormat: req.AudioFormat,
		VideoFormat: req.VideoFormat,
		Transcoder:  d.Transcoder.Available,
	})
	template := outputTemplate(req.OutputDir)

	info, err := d.Extractor.Fetch(ctx, extractor.FetchRequest{URL: req.URL, OutputTemplate: template, Plan: plan})
	if err != nil {
		errText := err.Error()
		if kind, msg := Classify(errText, plat); kind != KindUnknown {
			log.Debug("Fetch failed", "class", kind, "err", errText)
			out := models.Failure(msg, errText)
			out.Action = ActionDownload
			return out, nil
		}

		log.Warn("Fetch failed, retrying with degraded settings", "err", errText)
		return d.degraded(ctx, req, plat, template, errText), nil
	}

	if len(info.RequestedDownloads) == 0 {
		formats := len(info.Formats)
		out := models.Failure("Download was processed but no file was downloaded", "")
		out.Action = ActionDownload
		out.Title = info.Title
		out.AvailableFormats = &formats
		return out, nil
	}

	path := resolveFilepath(info, template, plan.ExpectedExt)
	return d.success(ctx, req, plat, info, path, plan.Note), nil
}

// degraded is the second and last tier: crude format, no platform logic, no post-processing.
func (d *Downloader) degraded(ctx context.Context, req Request, plat platform.Platform, template, origErr string) *models.Outcome {
	info, err := d.Extractor.Fetch(ctx, extractor.FetchRequest{URL: req.URL, OutputTemplate: template, Plan: policy.Degraded()})
	if err != nil {
		slog.Warn("Degraded fetch failed", "url", req.URL, "err", err)
		out := models.Failure("Download failed even with the most basic settings", origErr)
		out.Action = ActionDownload
		return out
	}

	path := resolveFilepath(info, template, "")
	return d.success(ctx, req, plat, info, path, "Used worst quality fallback. Original error: "+origErr)
}

func (d *Downloader) success(ctx context.Context, req Request, plat platform.Platform, info *extractor.Info, path, note string) *models.Outcome {
	id := info.ID
	if id == "" && plat == platform.YouTube {
		id = platform.ExtractVideoID(req.URL)
	}
	title := d.resolveTitle(ctx, plat, info.Title, id)

	webpageURL := info.WebpageURL
	if webpageURL == "" {
		webpageURL = req.URL
	}

	if d.TagAudio && req.Kind == models.KindAudio && path != "" {
		artist := info.Uploader
		if artist == "" {
			artist = info.Channel
		}
		tagAudio(path, title, artist)
	}

	return &models.Outcome{
		Status:     models.StatusOK,
		Action:     ActionDownload,
		Platform:   plat.String(),
		Kind:       req.Kind,
		Title:      title,
		ID:         id,
		Duration:   info.Duration,
		Ext:        extOf(path),
		Filepath:   path,
		Note:       note,
		WebpageURL: webpageURL,
	}
}

// resolveTitle fills a missing YouTube title through oEmbed, falling back to video_<id>.
func (d *Downloader) resolveTitle(ctx context.Context, plat platform.Platform, title, id string) string {
	if title != "" || id == "" || plat != platform.YouTube {
		return title
	}
	if d.Client != nil {
		t, err := metadata.VideoTitle(ctx, d.Client, id)
		if err == nil && t != "" {
			return t
		}
		slog.Warn("Failed to fetch title metadata", "id", id, "err", err)
	}
	return "video_" + id
}

func unavailableMessage(report models.AvailabilityReport) string {
	msg := "Video has no downloadable formats. "
	if report.Error != "" {
		return msg + "Error: " + report.Error
	}
	return msg + fmt.Sprintf("Only %d image formats (storyboard) found, no audio/video.", report.TotalFormats)
}
