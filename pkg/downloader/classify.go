package downloader

import (
	"strings"

	"github.com/imbecility/socialdl/pkg/platform"
)

// ErrorKind is the closed set of recognised fetch failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindImagesOnly
	KindPrivate
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindImagesOnly:
		return "images_only"
	case KindPrivate:
		return "private"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// checked in order; "private video" errors often also say "unavailable"
var classifications = []struct {
	needle string
	kind   ErrorKind
}{
	{"only images are available", KindImagesOnly},
	{"private video", KindPrivate},
	{"unavailable", KindUnavailable},
}

// Classify maps raw failure text to an ErrorKind and the message shown to the caller.
// KindUnknown comes with an empty message.
func Classify(text string, p platform.Platform) (ErrorKind, string) {
	lower := strings.ToLower(text)
	for _, c := range classifications {
		if strings.Contains(lower, c.needle) {
			return c.kind, message(c.kind, p)
		}
	}
	return KindUnknown, ""
}

func message(k ErrorKind, p platform.Platform) string {
	subject := subjectFor(p)
	switch k {
	case KindImagesOnly:
		return "This " + subject + " only provides preview images, there is no audio/video to download"
	case KindPrivate:
		return "This " + subject + " is private and cannot be downloaded"
	case KindUnavailable:
		return "This " + subject + " is unavailable (it may have been removed or blocked in this region)"
	default:
		return ""
	}
}

func subjectFor(p platform.Platform) string {
	switch p {
	case platform.YouTube:
		return "YouTube video"
	case platform.TikTok:
		return "TikTok video"
	case platform.Instagram:
		return "Instagram post"
	case platform.Facebook:
		return "Facebook video"
	default:
		return "video"
	}
}
