package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/schema"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/presentation"
)

type wordLoader struct {
	path string
}

func (l wordLoader) Extract(_ context.Context) ([]schema.Document, error) {
	doc, err := document.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open word document: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}

	return []schema.Document{{PageContent: sb.String()}}, nil
}

type slidesLoader struct {
	path string
}

func (l slidesLoader) Extract(_ context.Context) ([]schema.Document, error) {
	ppt, err := presentation.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open presentation: %w", err)
	}
	defer ppt.Close()

	slides := ppt.Slides()
	docs := make([]schema.Document, 0, len(slides))
	for i, slide := range slides {
		var sb strings.Builder
		for _, ph := range slide.PlaceHolders() {
			for _, para := range ph.Paragraphs() {
				for _, run := range para.X().EG_TextRun {
					if run.R != nil {
						sb.WriteString(run.R.T)
					}
				}
				sb.WriteString("\n")
			}
		}
		docs = append(docs, schema.Document{
			PageContent: sb.String(),
			Metadata:    map[string]any{"slide": i + 1},
		})
	}

	return docs, nil
}
