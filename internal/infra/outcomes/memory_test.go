package outcomes

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

func TestMemoryRecorderCounts(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	for _, source := range []outfit.Source{
		outfit.SourceModel,
		outfit.SourceFallbackExtraction,
		outfit.SourceModel,
		outfit.SourceUpstreamError,
		outfit.SourceModel,
		outfit.SourceFallbackExtraction,
		"",
	} {
		require.NoError(t, rec.Record(ctx, outfit.Outcome{Source: source}))
	}

	counts, err := rec.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, []outfit.SourceCount{
		{Source: outfit.SourceModel, Count: 3},
		{Source: outfit.SourceFallbackExtraction, Count: 2},
		{Source: outfit.SourceUpstreamError, Count: 1},
	}, counts)
}

func TestMemoryRecorderConcurrentRecord(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Record(ctx, outfit.Outcome{Source: outfit.SourceFallbackTimeout})
		}()
	}
	wg.Wait()

	counts, err := rec.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, []outfit.SourceCount{{Source: outfit.SourceFallbackTimeout, Count: 50}}, counts)
}

func TestMemoryRecorderEmpty(t *testing.T) {
	counts, err := NewMemoryRecorder().Counts(context.Background())
	require.NoError(t, err)
	require.Empty(t, counts)
}
