package platform

import (
	"regexp"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

var (
	videoIDRe = regexp.MustCompile(`(?:https?://)?(?:www\.|m\.|music\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/(?:watch\?v=|embed/|v/|.+\?v=|shorts/)?([^&=%\?]{11})`)
	bareIDRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

func ExtractVideoID(input string) string {
	matches := videoIDRe.FindStringSubmatch(input)
	if len(matches) >= 2 {
		return matches[1]
	}

	if bareIDRe.MatchString(input) {
		return input
	}

	return ""
}

// NormalizeURL turns a bare 11-character YouTube ID into a watch URL.
// Anything else is returned unchanged.
func NormalizeURL(input string) string {
	if bareIDRe.MatchString(input) {
		return watchURLPrefix + input
	}
	return input
}
