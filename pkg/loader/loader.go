// Package loader selects a text-extraction capability by file
// extension and adapts each supported format to a common interface.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// ErrUnsupportedFormat is returned for extensions outside the supported
// set. Batch upload skips such files instead of failing.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies one of the supported document formats.
type Format string

const (
	FormatUnknown Format = ""
	FormatPDF     Format = "pdf"
	FormatWord    Format = "word"
	FormatSlides  Format = "slides"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatText    Format = "text"
)

// Detect infers the document format from the filename's extension,
// case-insensitively.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx", ".doc":
		return FormatWord
	case ".pptx", ".ppt":
		return FormatSlides
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// Supported reports whether an extraction capability exists for the
// format.
func (f Format) Supported() bool {
	return f != FormatUnknown
}

// Loader extracts plain-text documents from a local file.
type Loader interface {
	Extract(ctx context.Context) ([]schema.Document, error)
}

// New returns the loader responsible for the given filename, reading
// from path. Dispatch is by extension only, so path may point at a
// temporary copy with a generated name.
func New(filename, path string) (Loader, error) {
	switch Detect(filename) {
	case FormatPDF:
		return pdfLoader{path: path}, nil
	case FormatWord:
		return wordLoader{path: path}, nil
	case FormatSlides:
		return slidesLoader{path: path}, nil
	case FormatCSV:
		return csvLoader{path: path}, nil
	case FormatJSON:
		return jsonLoader{path: path}, nil
	case FormatText:
		return textLoader{path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

type pdfLoader struct {
	path string
}

func (l pdfLoader) Extract(ctx context.Context) ([]schema.Document, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	docs, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pdf: %w", err)
	}
	return docs, nil
}

type csvLoader struct {
	path string
}

func (l csvLoader) Extract(ctx context.Context) ([]schema.Document, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	docs, err := documentloaders.NewCSV(f).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load csv: %w", err)
	}
	return docs, nil
}

type textLoader struct {
	path string
}

func (l textLoader) Extract(ctx context.Context) ([]schema.Document, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()

	docs, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load text file: %w", err)
	}
	return docs, nil
}
