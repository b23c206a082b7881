package downloader

import (
	"log/slog"
	"strings"

	id3v2 "github.com/bogem/id3v2/v2"
)

// tagAudio writes title/artist frames into mp3 outputs. Other containers are left alone.
func tagAudio(path, title, artist string) {
	if !strings.EqualFold(extOf(path), "mp3") || (title == "" && artist == "") {
		return
	}
	if err := embedID3Tags(path, title, artist); err != nil {
		slog.Warn("ID3 tag embedding failed", "path", path, "err", err)
	}
}

func embedID3Tags(path, title, artist string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if title != "" {
		tag.SetTitle(title)
	}
	if artist != "" {
		tag.SetArtist(artist)
	}
	return tag.Save()
}
