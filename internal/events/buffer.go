package events

import (
	"fmt"
	"sync"
)

// Rolling buffer caps per stream.
const (
	CapSupplyChain = 10
	CapFinancial   = 20
	CapWorkforce   = 15
	CapTelemetry   = 30
	CapQuality     = 10
	CapInsights    = 12
)

// Counter hands out sequential ids. The zero value starts at 1.
type Counter struct {
	mu   sync.Mutex
	next map[string]int
}

// Next returns the next id for prefix, e.g. "SC-000001".
func (c *Counter) Next(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next == nil {
		c.next = map[string]int{}
	}
	c.next[prefix]++
	return fmt.Sprintf("%s-%06d", prefix, c.next[prefix])
}

// Reset restarts every sequence.
func (c *Counter) Reset() {
	c.mu.Lock()
	c.next = nil
	c.mu.Unlock()
}

// Buffer is a capped, newest-first list. It is not safe for concurrent use;
// the owner serializes access.
type Buffer[T any] struct {
	cap   int
	items []T
}

func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{cap: capacity}
}

// Prepend puts batch in front, preserving batch order, and evicts the oldest
// entries beyond the cap.
func (b *Buffer[T]) Prepend(batch ...T) {
	if len(batch) == 0 {
		return
	}
	merged := make([]T, 0, len(batch)+len(b.items))
	merged = append(merged, batch...)
	merged = append(merged, b.items...)
	if len(merged) > b.cap {
		merged = merged[:b.cap]
	}
	b.items = merged
}

func (b *Buffer[T]) Len() int { return len(b.items) }
func (b *Buffer[T]) Cap() int { return b.cap }

// Items returns a copy, newest first.
func (b *Buffer[T]) Items() []T {
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}
