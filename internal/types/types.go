package types

import (
	"context"

	"github.com/tmc/langchaingo/schema"

	"github.com/tshaw/ragapi/internal/models"
)

// Core interfaces

// Embedder turns texts into embedding vectors.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore owns the chunk storage and similarity ranking. Embedding
// happens implicitly as part of insertion.
type VectorStore interface {
	InsertChunks(ctx context.Context, docs []schema.Document) error
	SimilaritySearch(ctx context.Context, query string, k int) ([]schema.Document, error)
	Close()
}

// StoreOpener yields a freshly-initialized store handle. The pipelines
// open one handle per request and close it at the end.
type StoreOpener interface {
	Open(ctx context.Context) (VectorStore, error)
}

// BlobUploader persists a local file under objectPath and returns its
// public URL.
type BlobUploader interface {
	Upload(ctx context.Context, localPath, objectPath string) (string, error)
}

// Generator produces text from a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Splitter cuts extracted documents into overlapping chunks.
type Splitter interface {
	Process(docs []schema.Document) ([]schema.Document, error)
}

// Ingestor runs the upload pipeline over one batch of files.
type Ingestor interface {
	Ingest(ctx context.Context, files []models.UploadedFile) (*models.UploadResult, error)
}

// Querier answers a question from the stored chunks.
type Querier interface {
	Answer(ctx context.Context, question string) (string, error)
}
