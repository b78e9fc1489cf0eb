package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tshaw/ragapi/pkg/llm"
)

func TestNewWithConfigRequiresAPIKey(t *testing.T) {
	_, err := llm.NewWithConfig(context.Background(), llm.ChatConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}
