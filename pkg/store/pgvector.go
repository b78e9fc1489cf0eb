// Package store persists document chunks and their embeddings in
// Postgres with the pgvector extension.
package store

import (
	"context"
	"fmt"

	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/tmc/langchaingo/schema"

	"github.com/tshaw/ragapi/internal/types"
)

type VectorStoreConfig struct {
	ConnString  string
	TableName   string
	VectorDim   int
	SearchLimit int
	Embedder    types.Embedder
}

type VectorStore struct {
	config VectorStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(ctx context.Context, config VectorStoreConfig) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "document_vectors"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768 // Gemini embedding-001 dimension
	}
	if config.SearchLimit == 0 {
		config.SearchLimit = 6
	}
	if config.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	vs := &VectorStore{
		config: config,
		pool:   pool,
	}

	if err := vs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	// Enable pgvector extension
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			source TEXT,
			content TEXT,
			chunk_index INTEGER,
			embedding vector(%d),
			metadata JSONB
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// InsertChunks embeds each chunk and inserts it in a single
// transaction. A failure on any chunk rolls back the whole batch.
func (vs *VectorStore) InsertChunks(ctx context.Context, docs []schema.Document) error {
	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, source, content, chunk_index, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		vs.config.TableName)

	for i, doc := range docs {
		cleanContent := sanitizeUTF8(doc.PageContent)

		embedding, err := vs.embed(ctx, cleanContent)
		if err != nil {
			return err
		}

		var source string
		if doc.Metadata != nil {
			source, _ = doc.Metadata["source"].(string)
		}

		_, err = tx.Exec(ctx, stmt,
			uuid.NewString(),
			source,
			cleanContent,
			i,
			embedding,
			doc.Metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// SimilaritySearch returns the k chunks most similar to the query, in
// the store's cosine-distance order.
func (vs *VectorStore) SimilaritySearch(ctx context.Context, query string, k int) ([]schema.Document, error) {
	if k == 0 {
		k = vs.config.SearchLimit
	}

	embedding, err := vs.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	sel := fmt.Sprintf(`
		SELECT content, source, metadata
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, sel, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %v", err)
	}
	defer rows.Close()

	var docs []schema.Document
	for rows.Next() {
		var (
			content  string
			source   *string
			metadata map[string]interface{}
		)
		if err := rows.Scan(&content, &source, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		if metadata == nil {
			metadata = map[string]interface{}{}
		}
		if source != nil {
			metadata["source"] = *source
		}
		docs = append(docs, schema.Document{
			PageContent: content,
			Metadata:    metadata,
		})
	}

	return docs, rows.Err()
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

func (vs *VectorStore) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	embeddings, err := vs.config.Embedder.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to create embeddings: %v", err)
	}
	return pgvector.NewVector(flatten(embeddings)), nil
}

func flatten(embeddings [][]float32) []float32 {
	var flattened []float32
	for _, emb := range embeddings {
		flattened = append(flattened, emb...)
	}
	return flattened
}

func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}

// Opener hands out a freshly-initialized store per request, mirroring
// how the service connects to the vector store for every upload or
// question.
type Opener struct {
	config VectorStoreConfig
}

func NewOpener(config VectorStoreConfig) *Opener {
	return &Opener{config: config}
}

func (o *Opener) Open(ctx context.Context) (types.VectorStore, error) {
	return NewWithConfig(ctx, o.config)
}
