// Package pipeline orchestrates the upload and question flows. Each
// request walks its steps strictly in sequence; the heavy lifting is
// delegated to the loaders, splitter, blob store, vector store, and
// model clients behind their interfaces.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tshaw/ragapi/internal/models"
	"github.com/tshaw/ragapi/internal/types"
	"github.com/tshaw/ragapi/pkg/loader"
)

type IngestorConfig struct {
	// TempDir defaults to the system temp directory.
	TempDir string
}

type Ingestor struct {
	config   IngestorConfig
	opener   types.StoreOpener
	uploader types.BlobUploader
	splitter types.Splitter
}

func NewIngestor(config IngestorConfig, opener types.StoreOpener, uploader types.BlobUploader, splitter types.Splitter) *Ingestor {
	return &Ingestor{
		config:   config,
		opener:   opener,
		uploader: uploader,
		splitter: splitter,
	}
}

// Ingest processes the uploaded files one by one against a fresh store
// handle. Files with an unsupported extension are skipped without
// error; any other failure aborts the whole batch with no partial
// result.
func (ing *Ingestor) Ingest(ctx context.Context, files []models.UploadedFile) (*models.UploadResult, error) {
	st, err := ing.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer st.Close()

	result := &models.UploadResult{
		ProcessedFiles: []models.ProcessedFile{},
	}

	for _, file := range files {
		if !loader.Detect(file.Filename).Supported() {
			continue
		}

		processed, err := ing.processFile(ctx, st, file)
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", file.Filename, err)
		}

		result.ProcessedFiles = append(result.ProcessedFiles, processed)
		result.TotalChunks += processed.ChunksCreated
	}

	return result, nil
}

// processFile handles one file: temp copy, blob upload, text
// extraction, splitting, and insertion. The temporary copy is removed
// on every exit path.
func (ing *Ingestor) processFile(ctx context.Context, st types.VectorStore, file models.UploadedFile) (models.ProcessedFile, error) {
	tmp, err := os.CreateTemp(ing.config.TempDir, "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return models.ProcessedFile{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(file.Data); err != nil {
		tmp.Close()
		return models.ProcessedFile{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return models.ProcessedFile{}, fmt.Errorf("close temp file: %w", err)
	}

	objectPath := fmt.Sprintf("documents/%s/%s", uuid.NewString(), file.Filename)
	gcsURL, err := ing.uploader.Upload(ctx, tmp.Name(), objectPath)
	if err != nil {
		return models.ProcessedFile{}, fmt.Errorf("upload to blob storage: %w", err)
	}

	ld, err := loader.New(file.Filename, tmp.Name())
	if err != nil {
		return models.ProcessedFile{}, err
	}

	docs, err := ld.Extract(ctx)
	if err != nil {
		return models.ProcessedFile{}, fmt.Errorf("extract text: %w", err)
	}
	for i := range docs {
		if docs[i].Metadata == nil {
			docs[i].Metadata = map[string]any{}
		}
		docs[i].Metadata["source"] = file.Filename
	}

	chunks, err := ing.splitter.Process(docs)
	if err != nil {
		return models.ProcessedFile{}, fmt.Errorf("split text: %w", err)
	}

	if err := st.InsertChunks(ctx, chunks); err != nil {
		return models.ProcessedFile{}, fmt.Errorf("store chunks: %w", err)
	}

	return models.ProcessedFile{
		Filename:      file.Filename,
		ChunksCreated: len(chunks),
		GCSURL:        gcsURL,
	}, nil
}
