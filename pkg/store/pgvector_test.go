package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithConfigRequiresEmbedder(t *testing.T) {
	_, err := NewWithConfig(context.Background(), VectorStoreConfig{
		ConnString: "postgres://postgres@localhost:5432/vectordb",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedder")
}

func TestFlatten(t *testing.T) {
	flattened := flatten([][]float32{{1, 2}, {3}})
	assert.Equal(t, []float32{1, 2, 3}, flattened)

	assert.Empty(t, flatten(nil))
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "plain text", sanitizeUTF8("plain text"))

	broken := string([]byte{'h', 'i', 0xff, '!'})
	assert.Equal(t, "hi!", sanitizeUTF8(broken))
}
