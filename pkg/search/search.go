package search

import (
	"context"
	"fmt"

	"github.com/imbecility/socialdl/pkg/extractor"
	"github.com/imbecility/socialdl/pkg/models"
)

const ActionSearch = "search"

type Searcher struct {
	Extractor extractor.Extractor
}

// Search runs a YouTube search capped at limit results. Missing entries are
// skipped; index keeps the position the entry had in the response.
func (s *Searcher) Search(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	info, err := s.Extractor.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]models.SearchResult, 0, len(info.Entries))
	for i, e := range info.Entries {
		if e == nil {
			continue
		}
		results = append(results, models.SearchResult{
			Index:      i + 1,
			ID:         e.ID,
			Title:      e.Title,
			Duration:   e.Duration,
			WebpageURL: e.WebpageURL,
			Uploader:   e.Uploader,
			Channel:    e.Channel,
			Thumbnails: e.Thumbnails,
		})
	}

	return &models.SearchResponse{
		Status:  models.StatusOK,
		Action:  ActionSearch,
		Query:   query,
		Results: results,
	}, nil
}
