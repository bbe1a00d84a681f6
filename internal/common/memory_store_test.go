package common

import (
	"testing"
	"time"
)

type sampleEntry struct {
	Value     string
	FetchedAt time.Time
}

func TestMemoryStore_SetGetClear(t *testing.T) {
	store := NewMemoryStore[sampleEntry]()

	if _, ok := store.Get("missing"); ok {
		t.Error("Expected miss on empty store")
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.Set("a", sampleEntry{Value: "first", FetchedAt: now})
	store.Set("a", sampleEntry{Value: "second", FetchedAt: now.Add(time.Minute)})
	store.Set("b", sampleEntry{Value: "other", FetchedAt: now})

	got, ok := store.Get("a")
	if !ok {
		t.Fatal("Expected hit for key a")
	}
	if got.Value != "second" {
		t.Errorf("Expected later write to win, got %s", got.Value)
	}
	if store.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", store.Len())
	}

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Expected empty store after Clear, got %d", store.Len())
	}
	if _, ok := store.Get("a"); ok {
		t.Error("Expected miss after Clear")
	}
}

func TestMemoryStore_EntriesDoNotExpire(t *testing.T) {
	store := NewMemoryStore[int]()
	store.Set("k", 42)

	time.Sleep(10 * time.Millisecond)

	got, ok := store.Get("k")
	if !ok || got != 42 {
		t.Errorf("Expected 42, got %d (found %v)", got, ok)
	}
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2025, 11, 17, 21, 0, 0, 0, time.UTC)
	clock := ClockFunc(func() time.Time { return fixed })
	if !clock.Now().Equal(fixed) {
		t.Errorf("Expected %v, got %v", fixed, clock.Now())
	}
}
