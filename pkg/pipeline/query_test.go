package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"

	"github.com/tshaw/ragapi/pkg/pipeline"
)

func TestAnswerRequestsSixChunks(t *testing.T) {
	st := &fakeStore{searchDocs: []schema.Document{{PageContent: "ctx"}}}
	gen := &fakeGenerator{answer: "fine"}
	q := pipeline.NewQuerier(&fakeOpener{store: st}, gen)

	_, err := q.Answer(context.Background(), "What is X?")
	require.NoError(t, err)
	assert.Equal(t, 6, st.lastSearchK)
	assert.True(t, st.closed)
}

func TestAnswerReturnsModelTextVerbatim(t *testing.T) {
	st := &fakeStore{searchDocs: []schema.Document{{PageContent: "alpha"}, {PageContent: "beta"}}}
	gen := &fakeGenerator{answer: "  the model said so  "}
	q := pipeline.NewQuerier(&fakeOpener{store: st}, gen)

	answer, err := q.Answer(context.Background(), "What is X?")
	require.NoError(t, err)
	assert.Equal(t, "  the model said so  ", answer)
}

func TestAnswerSanitizesContext(t *testing.T) {
	st := &fakeStore{searchDocs: []schema.Document{
		{PageContent: `He said "hi"`},
		{PageContent: `Bye'`},
	}}
	gen := &fakeGenerator{answer: "ok"}
	q := pipeline.NewQuerier(&fakeOpener{store: st}, gen)

	_, err := q.Answer(context.Background(), "What happened?")
	require.NoError(t, err)

	assert.Contains(t, gen.prompt, "CONTEXT: 'He said hi Bye'")
	assert.Contains(t, gen.prompt, "QUESTION: 'What happened?'")
}

func TestAnswerEmptyRetrievalStillCallsModel(t *testing.T) {
	st := &fakeStore{}
	gen := &fakeGenerator{answer: "general knowledge answer"}
	q := pipeline.NewQuerier(&fakeOpener{store: st}, gen)

	answer, err := q.Answer(context.Background(), "What is X?")
	require.NoError(t, err)

	assert.Equal(t, "general knowledge answer", answer)
	assert.Contains(t, gen.prompt, "CONTEXT: ''")
}

func TestAnswerSearchFailure(t *testing.T) {
	st := &fakeStore{searchErr: errBoom}
	gen := &fakeGenerator{}
	q := pipeline.NewQuerier(&fakeOpener{store: st}, gen)

	_, err := q.Answer(context.Background(), "What is X?")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, gen.prompt)
	assert.True(t, st.closed)
}

func TestAnswerGenerateFailure(t *testing.T) {
	st := &fakeStore{searchDocs: []schema.Document{{PageContent: "ctx"}}}
	gen := &fakeGenerator{generateErr: errBoom}
	q := pipeline.NewQuerier(&fakeOpener{store: st}, gen)

	_, err := q.Answer(context.Background(), "What is X?")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}
