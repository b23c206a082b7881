package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/imbecility/socialdl/pkg/extractor"
)

type fakeExtractor struct {
	info *extractor.Info
	err  error

	query string
	limit int
}

func (f *fakeExtractor) Probe(context.Context, string) (*extractor.Info, error) {
	return nil, errors.New("not expected")
}

func (f *fakeExtractor) Fetch(context.Context, extractor.FetchRequest) (*extractor.Info, error) {
	return nil, errors.New("not expected")
}

func (f *fakeExtractor) Search(_ context.Context, query string, limit int) (*extractor.Info, error) {
	f.query, f.limit = query, limit
	return f.info, f.err
}

func TestSearch(t *testing.T) {
	dur := 212.0
	fx := &fakeExtractor{info: &extractor.Info{
		Type: "playlist",
		Entries: []*extractor.Info{
			{ID: "a1", Title: "First", Duration: &dur, WebpageURL: "https://www.youtube.com/watch?v=a1", Uploader: "U", Channel: "C",
				Thumbnails: []json.RawMessage{json.RawMessage(`{"url":"https://i.ytimg.com/a1.jpg"}`)}},
			nil,
			{ID: "c3", Title: "Third", WebpageURL: "https://www.youtube.com/watch?v=c3"},
		},
	}}
	s := &Searcher{Extractor: fx}

	res, err := s.Search(context.Background(), "lofi hip hop", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if fx.query != "lofi hip hop" || fx.limit != 5 {
		t.Errorf("extractor called with %q/%d", fx.query, fx.limit)
	}
	if res.Status != "ok" || res.Action != "search" || res.Query != "lofi hip hop" {
		t.Errorf("response = %+v", res)
	}
	if len(res.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(res.Results))
	}
	if res.Results[0].Index != 1 || res.Results[1].Index != 3 {
		t.Errorf("indexes = %d, %d; want 1, 3", res.Results[0].Index, res.Results[1].Index)
	}
	if res.Results[0].Duration == nil || *res.Results[0].Duration != 212 {
		t.Errorf("Duration = %v", res.Results[0].Duration)
	}
	if res.Results[1].Duration != nil {
		t.Errorf("missing duration should stay nil, got %v", *res.Results[1].Duration)
	}
	if len(res.Results[0].Thumbnails) != 1 {
		t.Errorf("Thumbnails = %v", res.Results[0].Thumbnails)
	}
}

func TestSearch_Empty(t *testing.T) {
	s := &Searcher{Extractor: &fakeExtractor{info: &extractor.Info{}}}

	res, err := s.Search(context.Background(), "zzzz", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Results == nil || len(res.Results) != 0 {
		t.Errorf("Results = %#v, want empty non-nil slice", res.Results)
	}
}

func TestSearch_PropagatesError(t *testing.T) {
	cause := errors.New("ERROR: network down")
	s := &Searcher{Extractor: &fakeExtractor{err: cause}}

	if _, err := s.Search(context.Background(), "q", 5); !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped %v", err, cause)
	}
}
