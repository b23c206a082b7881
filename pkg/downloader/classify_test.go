package downloader

import (
	"strings"
	"testing"

	"github.com/imbecility/socialdl/pkg/platform"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text     string
		plat     platform.Platform
		want     ErrorKind
		wantSubj string
	}{
		{"ERROR: Only images are available for download. use --list-formats", platform.YouTube, KindImagesOnly, "YouTube video"},
		{"ERROR: [youtube] x: Private video. Sign in", platform.YouTube, KindPrivate, "YouTube video"},
		{"ERROR: [youtube] x: PRIVATE VIDEO", platform.Unknown, KindPrivate, "video"},
		{"ERROR: [Instagram] x: This content is unavailable", platform.Instagram, KindUnavailable, "Instagram post"},
		{"ERROR: [TikTok] x: Video unavailable in your country", platform.TikTok, KindUnavailable, "TikTok video"},
		{"ERROR: HTTP Error 403: Forbidden", platform.Facebook, KindUnknown, ""},
		{"", platform.Unknown, KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want.String()+"/"+tt.text, func(t *testing.T) {
			kind, msg := Classify(tt.text, tt.plat)
			if kind != tt.want {
				t.Errorf("Classify(%q) kind = %v, want %v", tt.text, kind, tt.want)
			}
			if tt.want == KindUnknown {
				if msg != "" {
					t.Errorf("unknown kind carries message %q", msg)
				}
				return
			}
			if !strings.Contains(msg, tt.wantSubj) {
				t.Errorf("message %q does not name %q", msg, tt.wantSubj)
			}
		})
	}
}
