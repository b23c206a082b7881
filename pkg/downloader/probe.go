package downloader

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/imbecility/socialdl/pkg/models"
)

// Probe checks whether url has any audio or video format. It never fails:
// extraction errors are reported through the returned report.
func (d *Downloader) Probe(ctx context.Context, url string) models.AvailabilityReport {
	info, err := d.Extractor.Probe(ctx, url)
	if err != nil {
		slog.Debug("Availability probe failed", "url", url, "err", err)
		return models.AvailabilityReport{
			Available: false,
			Error:     err.Error(),
			Formats:   []json.RawMessage{},
		}
	}

	usable := make([]json.RawMessage, 0, len(info.Formats))
	for _, f := range info.Formats {
		if f.ImageOnly() {
			continue
		}
		raw, merr := json.Marshal(f)
		if merr != nil {
			continue
		}
		usable = append(usable, raw)
	}

	report := models.AvailabilityReport{
		Available:     len(usable) > 0,
		Formats:       usable,
		Duration:      info.Duration,
		TotalFormats:  len(info.Formats),
		UsableFormats: len(usable),
	}
	if info.Title != "" {
		title := info.Title
		report.Title = &title
	}
	return report
}
