package events

import (
	"fmt"
	"testing"
)

func TestCounterSequences(t *testing.T) {
	var c Counter
	if got := c.Next("SC"); got != "SC-000001" {
		t.Fatalf("first id=%q", got)
	}
	if got := c.Next("SC"); got != "SC-000002" {
		t.Fatalf("second id=%q", got)
	}
	if got := c.Next("FT"); got != "FT-000001" {
		t.Fatalf("prefixes must count independently, got %q", got)
	}
	c.Reset()
	if got := c.Next("SC"); got != "SC-000001" {
		t.Fatalf("after reset id=%q", got)
	}
}

func TestBufferCaps(t *testing.T) {
	caps := map[string]int{
		"supply":    CapSupplyChain,
		"financial": CapFinancial,
		"workforce": CapWorkforce,
		"telemetry": CapTelemetry,
		"quality":   CapQuality,
		"insights":  CapInsights,
	}
	for name, capacity := range caps {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer[int](capacity)
			next := 0
			for round := 0; round < 20; round++ {
				batch := make([]int, round%7)
				for i := range batch {
					batch[i] = next
					next++
				}
				b.Prepend(batch...)
				if b.Len() > capacity {
					t.Fatalf("round %d: len=%d exceeds cap %d", round, b.Len(), capacity)
				}
			}
			if b.Len() != capacity {
				t.Fatalf("len=%d want full cap %d", b.Len(), capacity)
			}
		})
	}
}

func TestBufferNewestFirst(t *testing.T) {
	b := NewBuffer[string](4)
	b.Prepend("a1", "a2")
	b.Prepend("b1", "b2", "b3")
	got := fmt.Sprint(b.Items())
	if got != "[b1 b2 b3 a1]" {
		t.Fatalf("items=%s", got)
	}
	b.Prepend()
	if b.Len() != 4 {
		t.Fatalf("empty prepend changed len to %d", b.Len())
	}
}

func TestBufferItemsIsCopy(t *testing.T) {
	b := NewBuffer[int](3)
	b.Prepend(1, 2, 3)
	items := b.Items()
	items[0] = 99
	if b.Items()[0] != 1 {
		t.Fatal("Items exposed internal storage")
	}
}

func TestBufferOversizedBatch(t *testing.T) {
	b := NewBuffer[int](2)
	b.Prepend(1, 2, 3, 4)
	if got := fmt.Sprint(b.Items()); got != "[1 2]" {
		t.Fatalf("items=%s", got)
	}
}
