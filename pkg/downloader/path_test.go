package downloader

import (
	"path/filepath"
	"testing"

	"github.com/imbecility/socialdl/pkg/extractor"
)

func TestResolveFilepath(t *testing.T) {
	tmpl := outputTemplate("downloads")

	tests := []struct {
		name      string
		info      *extractor.Info
		preferred string
		want      string
	}{
		{
			name: "requested downloads win",
			info: &extractor.Info{
				RequestedDownloads: []extractor.RequestedDownload{{}, {Filepath: "downloads/a.mp3"}},
				Filename:           "downloads/a.webm",
			},
			preferred: "m4a",
			want:      "downloads/a.mp3",
		},
		{
			name:      "prepared filename with preferred ext",
			info:      &extractor.Info{Filename: "downloads/a [x].webm"},
			preferred: "mp3",
			want:      "downloads/a [x].mp3",
		},
		{
			name: "legacy filename kept as is",
			info: &extractor.Info{LegacyFilename: "downloads/a [x].webm"},
			want: "downloads/a [x].webm",
		},
		{
			name:      "rendered template",
			info:      &extractor.Info{ID: "x1", Title: "AC/DC live", Ext: "mp4"},
			preferred: "",
			want:      filepath.Join("downloads", "AC_DC live [x1].mp4"),
		},
		{
			name:      "rendered template with preferred ext",
			info:      &extractor.Info{ID: "x1", Title: "Song", Ext: "webm"},
			preferred: "mp3",
			want:      filepath.Join("downloads", "Song [x1].mp3"),
		},
		{
			name: "nothing known",
			info: &extractor.Info{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFilepath(tt.info, tmpl, tt.preferred); got != tt.want {
				t.Errorf("resolveFilepath() = %q, want %q", got, tt.want)
			}
		})
	}
}
