package downloader

import (
	"context"
	"errors"

	"github.com/imbecility/socialdl/pkg/extractor"
)

type fakeExtractor struct {
	probeInfo *extractor.Info
	probeErr  error
	fetchFn   func(req extractor.FetchRequest) (*extractor.Info, error)

	probes  []string
	fetches []extractor.FetchRequest
}

func (f *fakeExtractor) Probe(_ context.Context, url string) (*extractor.Info, error) {
	f.probes = append(f.probes, url)
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.probeInfo, nil
}

func (f *fakeExtractor) Fetch(_ context.Context, req extractor.FetchRequest) (*extractor.Info, error) {
	f.fetches = append(f.fetches, req)
	if f.fetchFn == nil {
		return nil, errors.New("fetch not expected")
	}
	return f.fetchFn(req)
}

func (f *fakeExtractor) Search(context.Context, string, int) (*extractor.Info, error) {
	return nil, errors.New("search not expected")
}

func playable() *extractor.Info {
	return &extractor.Info{
		ID:    "abc123",
		Title: "Song",
		Formats: []extractor.Format{
			{FormatID: "sb0", VCodec: "images", ACodec: "none"},
			{FormatID: "140", VCodec: "none", ACodec: "mp4a.40.2", Ext: "m4a"},
			{FormatID: "251", VCodec: "none", ACodec: "opus", Ext: "webm"},
		},
	}
}

func storyboardOnly() *extractor.Info {
	return &extractor.Info{
		ID:    "abc123",
		Title: "Song",
		Formats: []extractor.Format{
			{FormatID: "sb0", VCodec: "images", ACodec: "none"},
			{FormatID: "sb1", VCodec: "images", ACodec: "none"},
		},
	}
}
