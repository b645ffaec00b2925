package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTokenUsageDerivesTotal(t *testing.T) {
	require.Equal(t, TokenUsage{PromptTokens: 7, CompletionTokens: 5, TotalTokens: 12}, NewTokenUsage(7, 5, 0))
	require.Equal(t, 20, NewTokenUsage(7, 5, 20).TotalTokens)
	require.True(t, NewTokenUsage(0, 0, 0).IsZero())
	require.False(t, NewTokenUsage(1, 0, 0).IsZero())
}
