package engine

import "testing"

func TestRingBufferPush(t *testing.T) {
	rb := NewRingBuffer[int](5)
	for i := 0; i < 3; i++ {
		if _, evicted := rb.Push(i); evicted {
			t.Errorf("push %d should not evict", i)
		}
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
	if rb.Cap() != 5 {
		t.Errorf("expected cap 5, got %d", rb.Cap())
	}
}

func TestRingBufferWrap(t *testing.T) {
	rb := NewRingBuffer[int](3)
	var evictedItems []int
	for i := 0; i < 5; i++ {
		if old, ok := rb.Push(i); ok {
			evictedItems = append(evictedItems, old)
		}
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
	items := rb.Items()
	want := []int{2, 3, 4}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("expected items %v, got %v", want, items)
		}
	}
	if len(evictedItems) != 2 || evictedItems[0] != 0 || evictedItems[1] != 1 {
		t.Errorf("expected evictions [0 1], got %v", evictedItems)
	}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := NewRingBuffer[int](10)
	if rb.Len() != 0 {
		t.Error("new ring buffer should be empty")
	}
	if len(rb.Items()) != 0 {
		t.Error("Items() on empty buffer should return empty slice")
	}
	if _, ok := rb.Newest(); ok {
		t.Error("Newest() on empty buffer should return false")
	}
}

func TestRingBufferNewest(t *testing.T) {
	rb := NewRingBuffer[int](2)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	last, ok := rb.Newest()
	if !ok {
		t.Fatal("Newest() should return true for non-empty buffer")
	}
	if last != 3 {
		t.Errorf("expected 3, got %d", last)
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	rb := NewRingBuffer[int](0)
	rb.Push(7)
	rb.Push(8)
	if rb.Cap() != 1 || rb.Len() != 1 {
		t.Fatalf("expected cap 1 len 1, got cap %d len %d", rb.Cap(), rb.Len())
	}
	if v, _ := rb.Newest(); v != 8 {
		t.Errorf("expected 8, got %d", v)
	}
}
