package extractor

import (
	"encoding/json"
)

// Info is the subset of yt-dlp's info dict this tool reads.
type Info struct {
	Type               string              `json:"_type"`
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Duration           *float64            `json:"duration"`
	WebpageURL         string              `json:"webpage_url"`
	Uploader           string              `json:"uploader"`
	Channel            string              `json:"channel"`
	Ext                string              `json:"ext"`
	Thumbnails         []json.RawMessage   `json:"thumbnails"`
	Formats            []Format            `json:"formats"`
	RequestedDownloads []RequestedDownload `json:"requested_downloads"`
	Filename           string              `json:"filename"`
	LegacyFilename     string              `json:"_filename"`
	Entries            []*Info             `json:"entries"`
}

type RequestedDownload struct {
	Filepath string `json:"filepath"`
	Ext      string `json:"ext"`
}

// Format keeps the raw descriptor so it can be passed through untouched.
type Format struct {
	FormatID string          `json:"format_id"`
	Ext      string          `json:"ext"`
	VCodec   string          `json:"vcodec"`
	ACodec   string          `json:"acodec"`
	Raw      json.RawMessage `json:"-"`
}

func (f *Format) UnmarshalJSON(b []byte) error {
	type plain Format
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = Format(p)
	f.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (f Format) MarshalJSON() ([]byte, error) {
	if len(f.Raw) > 0 {
		return f.Raw, nil
	}
	type plain Format
	return json.Marshal(plain(f))
}

// ImageOnly reports storyboard entries, which carry no audio or video.
func (f Format) ImageOnly() bool {
	return f.VCodec == "images" || f.ACodec == "images"
}

// Filepath returns the first path yt-dlp reports for the finished download.
func (i *Info) Filepath() string {
	for _, d := range i.RequestedDownloads {
		if d.Filepath != "" {
			return d.Filepath
		}
	}
	return ""
}

// PreparedFilename is the template-rendered name yt-dlp computed before any post-processing.
func (i *Info) PreparedFilename() string {
	if i.Filename != "" {
		return i.Filename
	}
	return i.LegacyFilename
}
