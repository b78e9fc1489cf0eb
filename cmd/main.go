package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/tshaw/ragapi/pkg/blob"
	"github.com/tshaw/ragapi/pkg/config"
	"github.com/tshaw/ragapi/pkg/llm"
	"github.com/tshaw/ragapi/pkg/pipeline"
	"github.com/tshaw/ragapi/pkg/processor"
	"github.com/tshaw/ragapi/pkg/store"
	"github.com/tshaw/ragapi/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	chatEngine, err := llm.NewWithConfig(ctx, llm.ChatConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize chat engine: %w", err)
	}

	uploader, err := blob.NewUploader(ctx, cfg.BucketName)
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	opener := store.NewOpener(store.VectorStoreConfig{
		ConnString: cfg.ConnString(),
		Embedder:   chatEngine,
	})

	splitter := processor.NewWithConfig(processor.ProcessorConfig{})

	ingestor := pipeline.NewIngestor(pipeline.IngestorConfig{}, opener, uploader, &splitter)
	querier := pipeline.NewQuerier(opener, chatEngine)

	srv := server.New(ingestor, querier, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting server", zap.String("addr", addr))

	return http.ListenAndServe(addr, srv)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
