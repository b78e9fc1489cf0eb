package pipeline_test

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/schema"

	"github.com/tshaw/ragapi/internal/types"
)

// fakeStore records inserts and similarity searches. It stands in for
// the pgvector-backed store in pipeline tests.
type fakeStore struct {
	inserted    []schema.Document
	insertErr   error
	searchDocs  []schema.Document
	searchErr   error
	lastSearchK int
	closed      bool
}

func (f *fakeStore) InsertChunks(_ context.Context, docs []schema.Document) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, docs...)
	return nil
}

func (f *fakeStore) SimilaritySearch(_ context.Context, _ string, k int) ([]schema.Document, error) {
	f.lastSearchK = k
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchDocs, nil
}

func (f *fakeStore) Close() {
	f.closed = true
}

type fakeOpener struct {
	store   *fakeStore
	openErr error
	opens   int
}

func (f *fakeOpener) Open(_ context.Context) (types.VectorStore, error) {
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.store, nil
}

type fakeUploader struct {
	uploads   []string
	uploadErr error
}

func (f *fakeUploader) Upload(_ context.Context, _, objectPath string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, objectPath)
	return "https://storage.googleapis.com/test-bucket/" + objectPath, nil
}

// fakeSplitter passes documents through unchanged, one chunk per
// extracted document.
type fakeSplitter struct {
	splitErr error
}

func (f *fakeSplitter) Process(docs []schema.Document) ([]schema.Document, error) {
	if f.splitErr != nil {
		return nil, f.splitErr
	}
	return docs, nil
}

type fakeGenerator struct {
	prompt      string
	answer      string
	generateErr error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.answer, nil
}

var errBoom = errors.New("boom")
