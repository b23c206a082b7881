package platform

import (
	"strings"
)

type Platform string

const (
	YouTube   Platform = "youtube"
	TikTok    Platform = "tiktok"
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	Unknown   Platform = "unknown"
)

// order matters: first match wins
var hostFragments = []struct {
	platform  Platform
	fragments []string
}{
	{YouTube, []string{"youtube.com", "youtu.be"}},
	{TikTok, []string{"tiktok.com"}},
	{Instagram, []string{"instagram.com"}},
	{Facebook, []string{"facebook.com", "fb.watch"}},
}

// Detect maps a URL to a coarse platform tag by case-insensitive substring match.
func Detect(rawURL string) Platform {
	u := strings.ToLower(rawURL)
	for _, hf := range hostFragments {
		for _, frag := range hf.fragments {
			if strings.Contains(u, frag) {
				return hf.platform
			}
		}
	}
	return Unknown
}

func (p Platform) String() string {
	return string(p)
}
