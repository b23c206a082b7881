package models

import (
	"encoding/json"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// SearchResult is one entry of a site search, numbered from 1.
type SearchResult struct {
	Index      int               `json:"index"`
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Duration   *float64          `json:"duration"`
	WebpageURL string            `json:"webpage_url"`
	Uploader   string            `json:"uploader"`
	Channel    string            `json:"channel"`
	Thumbnails []json.RawMessage `json:"thumbnails"`
}

type SearchResponse struct {
	Status  string         `json:"status"`
	Action  string         `json:"action"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// AvailabilityReport is the outcome of a metadata-only probe.
// Formats never contains storyboard (image-only) entries.
type AvailabilityReport struct {
	Available     bool              `json:"available"`
	Error         string            `json:"error,omitempty"`
	Formats       []json.RawMessage `json:"formats"`
	Title         *string           `json:"title,omitempty"`
	Duration      *float64          `json:"duration,omitempty"`
	TotalFormats  int               `json:"total_formats"`
	UsableFormats int               `json:"usable_formats"`
}

// Attempt records one candidate tried by play.
type Attempt struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

type SearchInfo struct {
	Query          string    `json:"query"`
	RequestedIndex int       `json:"requested_index"`
	ActualIndex    int       `json:"actual_index"`
	ChosenTitle    string    `json:"chosen_title"`
	Attempts       []Attempt `json:"attempts"`
}

// Outcome is the single JSON document written to stdout for play and download.
// Success fields and failure fields are never populated together.
type Outcome struct {
	Status string `json:"status"`
	Action string `json:"action,omitempty"`

	// success
	Platform   string   `json:"platform,omitempty"`
	Kind       Kind     `json:"kind,omitempty"`
	Title      string   `json:"title,omitempty"`
	ID         string   `json:"id,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
	Ext        string   `json:"ext,omitempty"`
	Filepath   string   `json:"filepath,omitempty"`
	Note       string   `json:"note,omitempty"`
	WebpageURL string   `json:"webpage_url,omitempty"`

	Search *SearchInfo `json:"search,omitempty"`

	// failure
	Message          string              `json:"message,omitempty"`
	Error            string              `json:"error,omitempty"`
	Details          *AvailabilityReport `json:"details,omitempty"`
	AvailableFormats *int                `json:"available_formats,omitempty"`
	Query            string              `json:"query,omitempty"`
	Attempts         []Attempt           `json:"attempts,omitempty"`
}

func (o *Outcome) OK() bool {
	return o != nil && o.Status == StatusOK
}

// Failure builds an error outcome.
func Failure(message, errText string) *Outcome {
	return &Outcome{
		Status:  StatusError,
		Message: message,
		Error:   errText,
	}
}
