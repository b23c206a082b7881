package ffmpeg

import (
	"log/slog"
	"os/exec"
)

const DefaultBinary = "ffmpeg"

// Transcoder describes the ffmpeg found on this machine, if any.
type Transcoder struct {
	Path      string
	Available bool
	// Custom is set when Path came from configuration rather than the default name,
	// in which case yt-dlp has to be told where it is.
	Custom bool
}

var lookPath = exec.LookPath

// Detect looks the requested binary up on the search path. Absence is not an error.
func Detect(requested string) Transcoder {
	if requested == "" {
		requested = DefaultBinary
	}

	path, err := lookPath(requested)
	if err != nil {
		slog.Debug("FFmpeg not found, post-processing disabled", "requested", requested, "err", err)
		return Transcoder{}
	}

	slog.Debug("FFmpeg found", "path", path)
	return Transcoder{
		Path:      path,
		Available: true,
		Custom:    requested != DefaultBinary,
	}
}

// Location is the value for yt-dlp's --ffmpeg-location, empty when the default lookup suffices.
func (t Transcoder) Location() string {
	if t.Available && t.Custom {
		return t.Path
	}
	return ""
}
