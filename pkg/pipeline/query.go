package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/tshaw/ragapi/internal/types"
)

// searchLimit is the number of chunks retrieved per question.
const searchLimit = 6

const answerTemplate = `
You are a helpful and informative assistant that answers questions using the provided reference context.
Provide comprehensive answers while maintaining a conversational tone for non-technical audiences.
Break down complex concepts into simpler terms.
If the context doesn't contain relevant information, acknowledge that and provide a general response.

QUESTION: '%s'
CONTEXT: '%s'

ANSWER:
`

// contextSanitizer strips quotes and flattens newlines so the context
// fits the template's single-quoted slot. Not a security boundary.
var contextSanitizer = strings.NewReplacer("'", "", `"`, "", "\n", " ")

type Querier struct {
	opener    types.StoreOpener
	generator types.Generator
}

func NewQuerier(opener types.StoreOpener, generator types.Generator) *Querier {
	return &Querier{
		opener:    opener,
		generator: generator,
	}
}

// Answer retrieves the chunks most similar to the question from a
// fresh store handle and forwards them with the question to the
// generative model. The model is invoked even when retrieval comes
// back empty.
func (q *Querier) Answer(ctx context.Context, question string) (string, error) {
	st, err := q.opener.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer st.Close()

	docs, err := st.SimilaritySearch(ctx, question, searchLimit)
	if err != nil {
		return "", fmt.Errorf("similarity search: %w", err)
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.PageContent)
	}

	prompt := buildPrompt(question, strings.Join(parts, "\n"))

	answer, err := q.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}

func buildPrompt(question, context string) string {
	return fmt.Sprintf(answerTemplate, question, contextSanitizer.Replace(context))
}
