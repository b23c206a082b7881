package metadata

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/imbecility/socialdl/pkg/client"
)

var (
	OEmbedEndpoint = "https://www.youtube.com/oembed"
	WatchBaseURL   = "https://www.youtube.com/watch?v="
)

var titleRe = regexp.MustCompile(`<title>(.*?)(?: - YouTube)?</title>`)

// VideoTitle looks up a YouTube title: oEmbed first, then the watch page <title>.
func VideoTitle(ctx context.Context, c client.HTTPClient, videoID string) (string, error) {
	title, err := oembedTitle(ctx, c, videoID)
	if err == nil && title != "" {
		return title, nil
	}
	slog.Debug("oEmbed title failed, falling back to scraping", "err", err)
	return scrapedTitle(ctx, c, videoID)
}

func oembedTitle(ctx context.Context, c client.HTTPClient, videoID string) (string, error) {
	q := url.Values{}
	q.Set("url", WatchBaseURL+videoID)
	q.Set("format", "json")

	resp, err := client.Get(ctx, c, OEmbedEndpoint+"?"+q.Encode())
	if err != nil {
		return "", err
	}
	defer client.CloseBody(resp.Body)

	var data struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.Title, nil
}

// scrapedTitle reads at most 1MB of the watch page looking for <title>.
func scrapedTitle(ctx context.Context, c client.HTTPClient, videoID string) (string, error) {
	resp, err := client.Get(ctx, c, WatchBaseURL+videoID)
	if err != nil {
		return "", err
	}
	defer client.CloseBody(resp.Body)

	scanner := bufio.NewScanner(resp.Body)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	bytesRead := 0
	const maxBytes = 1024 * 1024

	for scanner.Scan() {
		line := scanner.Text()
		bytesRead += len(line)

		if m := titleRe.FindStringSubmatch(line); len(m) >= 2 {
			return html.UnescapeString(m[1]), nil
		}
		if bytesRead > maxBytes {
			break
		}
	}

	return "", fmt.Errorf("title not found in first %d bytes", maxBytes)
}
