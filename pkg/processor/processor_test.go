package processor_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"

	"github.com/tshaw/ragapi/pkg/processor"
)

// sentences returns n distinct sentences of 98 characters each, joined
// by ". " so the full text is n*98 + (n-1)*2 characters long.
func sentences(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("Sentence %02d %s", i+1, strings.Repeat("x", 86))
	}
	return strings.Join(parts, ". ")
}

func TestProcessDefaults(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	chunks, err := p.Process([]schema.Document{
		{PageContent: "A short document that fits in one chunk.", Metadata: map[string]any{"source": "a.txt"}},
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a.txt", chunks[0].Metadata["source"])
}

func TestProcessChunkBounds(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	})

	text := sentences(25) // ~2500 characters
	chunks, err := p.Process([]schema.Document{{PageContent: text}})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.PageContent), 1000, "chunk %d exceeds configured size", i)
	}
}

func TestProcessOverlap(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	})

	chunks, err := p.Process([]schema.Document{{PageContent: sentences(25)}})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].PageContent
		head := chunks[i].PageContent[:100]
		assert.Contains(t, prev, head, "chunk %d does not overlap its predecessor", i)
	}
}

func TestProcessDeterministic(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	})

	input := []schema.Document{{PageContent: sentences(25)}}

	first, err := p.Process(input)
	require.NoError(t, err)
	second, err := p.Process(input)
	require.NoError(t, err)

	require.Equal(t, first, second)
}
