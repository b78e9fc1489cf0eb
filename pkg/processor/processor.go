// Package processor splits extracted documents into overlapping chunks.
// The splitting itself is delegated to langchaingo's recursive splitter
// configured with sentence-aware separators.
package processor

import (
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

type ProcessorConfig struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

type Processor struct {
	config   ProcessorConfig
	splitter textsplitter.RecursiveCharacter
}

func NewWithConfig(config ProcessorConfig) Processor {
	if config.ChunkSize == 0 {
		config.ChunkSize = 1000
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = 200
	}
	if len(config.Separators) == 0 {
		// Prefer paragraph and sentence boundaries before falling back
		// to words.
		config.Separators = []string{"\n\n", "\n", ". ", " ", ""}
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
		textsplitter.WithSeparators(config.Separators),
	)

	return Processor{
		config:   config,
		splitter: splitter,
	}
}

// Process splits the documents into chunks no longer than the
// configured size, with consecutive chunks overlapping by roughly the
// configured amount. Source metadata is carried over to each chunk.
func (p *Processor) Process(docs []schema.Document) ([]schema.Document, error) {
	return textsplitter.SplitDocuments(p.splitter, docs)
}
