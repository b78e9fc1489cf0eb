package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/schema"
)

type jsonLoader struct {
	path string
}

// Extract collects every scalar value in the JSON payload, object keys
// sorted for a stable order, and joins them into one document.
func (l jsonLoader) Extract(_ context.Context) ([]schema.Document, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	var parts []string
	collectValues(payload, &parts)

	return []schema.Document{{PageContent: strings.Join(parts, "\n")}}, nil
}

func collectValues(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		*out = append(*out, t)
	case float64, bool:
		*out = append(*out, fmt.Sprint(t))
	case []any:
		for _, item := range t {
			collectValues(item, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectValues(t[k], out)
		}
	}
}
