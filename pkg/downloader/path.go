package downloader

import (
	"path/filepath"
	"strings"

	"github.com/imbecility/socialdl/pkg/extractor"
)

const nameTemplate = "%(title)s [%(id)s].%(ext)s"

func outputTemplate(dir string) string {
	return filepath.Join(dir, nameTemplate)
}

// resolveFilepath prefers the path yt-dlp reports for the finished file, then the
// name it prepared, then the template rendered locally. preferredExt replaces the
// extension of the latter two when post-processing changes the container.
func resolveFilepath(info *extractor.Info, template, preferredExt string) string {
	if fp := info.Filepath(); fp != "" {
		return fp
	}

	base := info.PreparedFilename()
	if base == "" {
		base = renderTemplate(template, info)
	}
	if preferredExt != "" && base != "" {
		return strings.TrimSuffix(base, filepath.Ext(base)) + "." + preferredExt
	}
	return base
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

func renderTemplate(template string, info *extractor.Info) string {
	if info.ID == "" && info.Title == "" {
		return ""
	}
	ext := info.Ext
	if ext == "" {
		ext = "unknown_video"
	}
	r := strings.NewReplacer(
		"%(title)s", unsafeName.Replace(info.Title),
		"%(id)s", unsafeName.Replace(info.ID),
		"%(ext)s", ext,
	)
	return r.Replace(template)
}

func extOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
