package outcomes

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// MemoryRecorder keeps outcome counters in process memory.
type MemoryRecorder struct {
	mu     sync.RWMutex
	counts map[outfit.Source]int64
}

// NewMemoryRecorder constructs a recorder backed by memory.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{counts: make(map[outfit.Source]int64)}
}

// Record implements outfit.OutcomeRecorder.
func (r *MemoryRecorder) Record(_ context.Context, outcome outfit.Outcome) error {
	if outcome.Source == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[outcome.Source]++
	return nil
}

// Counts returns per source totals, most frequent first.
func (r *MemoryRecorder) Counts(_ context.Context) ([]outfit.SourceCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]outfit.SourceCount, 0, len(r.counts))
	for source, count := range r.counts {
		items = append(items, outfit.SourceCount{Source: source, Count: count})
	}
	sortCounts(items)
	return items, nil
}

func sortCounts(items []outfit.SourceCount) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Source < items[j].Source
		}
		return items[i].Count > items[j].Count
	})
}

var _ outfit.OutcomeRecorder = (*MemoryRecorder)(nil)
