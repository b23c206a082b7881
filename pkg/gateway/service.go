package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/imbecility/socialdl/pkg/downloader"
	"github.com/imbecility/socialdl/pkg/models"
	"github.com/imbecility/socialdl/pkg/platform"
)

const (
	ActionPlay = "play"

	// MaxPlayAttempts bounds how many search results play tries.
	MaxPlayAttempts = 3
	minPlayResults  = 10
)

type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*models.SearchResponse, error)
}

type Fetcher interface {
	Download(ctx context.Context, req downloader.Request) (*models.Outcome, error)
}

type Service struct {
	Searcher   Searcher
	Downloader Fetcher
}

func NewService(s Searcher, d Fetcher) *Service {
	return &Service{
		Searcher:   s,
		Downloader: d,
	}
}

type PlayRequest struct {
	Query       string
	Index       int
	OutputDir   string
	AudioFormat string
}

func (s *Service) Search(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	return s.Searcher.Search(ctx, query, limit)
}

// Download fills in what the caller may leave out: bare YouTube IDs become watch
// URLs, and an empty kind means audio for YouTube and video everywhere else.
func (s *Service) Download(ctx context.Context, req downloader.Request) (*models.Outcome, error) {
	req.URL = platform.NormalizeURL(req.URL)
	if req.Kind == "" {
		req.Kind = DefaultKind(req.URL)
	}
	return s.Downloader.Download(ctx, req)
}

func DefaultKind(url string) models.Kind {
	if platform.Detect(url) == platform.YouTube {
		return models.KindAudio
	}
	return models.KindVideo
}

// Play searches and downloads audio from the first of up to three candidates
// that succeeds, starting at the requested 1-based index.
func (s *Service) Play(ctx context.Context, req PlayRequest) (*models.Outcome, error) {
	res, err := s.Searcher.Search(ctx, req.Query, max(minPlayResults, req.Index))
	if err != nil {
		return nil, err
	}

	results := res.Results
	if len(results) == 0 {
		return &models.Outcome{
			Status:  models.StatusError,
			Action:  ActionPlay,
			Message: "No results found",
			Query:   req.Query,
		}, nil
	}

	attempts := make([]models.Attempt, 0, MaxPlayAttempts)
	for attempt := 0; attempt < min(MaxPlayAttempts, len(results)); attempt++ {
		// clamping can pick the last result more than once
		i := clamp(req.Index+attempt, 1, len(results)) - 1
		chosen := results[i]

		attempts = append(attempts, models.Attempt{
			Index: i + 1,
			Title: chosen.Title,
			URL:   chosen.WebpageURL,
		})
		slog.Debug("Play attempt", "attempt", attempt+1, "index", i+1, "url", chosen.WebpageURL)

		out, err := s.Downloader.Download(ctx, downloader.Request{
			URL:         chosen.WebpageURL,
			Kind:        models.KindAudio,
			OutputDir:   req.OutputDir,
			AudioFormat: req.AudioFormat,
			VideoFormat: "mp4",
		})
		if err != nil {
			slog.Warn("Play attempt failed", "attempt", attempt+1, "err", err)
			attempts[len(attempts)-1].Error = err.Error()
			continue
		}
		if out.OK() {
			out.Action = ActionPlay
			out.Search = &models.SearchInfo{
				Query:          req.Query,
				RequestedIndex: req.Index,
				ActualIndex:    i + 1,
				ChosenTitle:    chosen.Title,
				Attempts:       slices.Clone(attempts),
			}
			return out, nil
		}
		slog.Debug("Play attempt returned error", "attempt", attempt+1, "message", out.Message)
	}

	return &models.Outcome{
		Status:   models.StatusError,
		Action:   ActionPlay,
		Message:  fmt.Sprintf("Failed to download audio from %d attempted videos", len(attempts)),
		Query:    req.Query,
		Attempts: attempts,
	}, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
