package prefilter

import (
	"strings"
	"testing"
)

// mockPrefilter is a simple prefilter that returns positions from a predefined list.
type mockPrefilter struct {
	positions []int
	idx       int
}

func (m *mockPrefilter) Find(haystack string, start int) int {
	for m.idx < len(m.positions) {
		pos := m.positions[m.idx]
		m.idx++
		if pos >= start {
			return pos
		}
	}
	return -1
}

func (m *mockPrefilter) IsComplete() bool { return false }
func (m *mockPrefilter) HeapBytes() int   { return 0 }
func (m *mockPrefilter) String() string   { return "mock" }

func TestTrackerBasic(t *testing.T) {
	mock := &mockPrefilter{positions: []int{5, 10, 15, 20}}
	tracker := NewTracker(mock)

	if !tracker.IsActive() {
		t.Error("Tracker should be active initially")
	}

	pos := tracker.Find("test input with some length", 0)
	if pos != 5 {
		t.Errorf("Find() = %d, want 5", pos)
	}

	candidates, skipped, active := tracker.Stats()
	if candidates != 1 {
		t.Errorf("candidates = %d, want 1", candidates)
	}
	if skipped != 5 {
		t.Errorf("skipped = %d, want 5", skipped)
	}
	if !active {
		t.Error("Should still be active")
	}
}

func TestTrackerNil(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("NewTracker(nil) should return nil")
	}
}

// A prefilter that matches at every offset skips nothing and gets disabled.
func TestTrackerDisablesDenseCandidates(t *testing.T) {
	haystack := strings.Repeat("a", 1000)
	tracker := NewTrackerWithConfig(newMemchrPrefilter('a', false), TrackerConfig{
		CheckInterval: 8,
		MinSkip:       1.0,
		WarmupPeriod:  16,
	})

	at := 0
	for tracker.IsActive() && at < len(haystack) {
		pos := tracker.Find(haystack, at)
		if pos != at {
			t.Fatalf("Find(%d) = %d", at, pos)
		}
		at = pos + 1
	}

	if tracker.IsActive() {
		t.Fatal("tracker should have been disabled")
	}
	candidates, _, _ := tracker.Stats()
	if candidates != 16 {
		t.Errorf("disabled after %d candidates, want 16", candidates)
	}

	// Disabled trackers hand back every offset.
	if got := tracker.Find(haystack, 500); got != 500 {
		t.Errorf("disabled Find(500) = %d, want 500", got)
	}
	if got := tracker.Find(haystack, len(haystack)+1); got != -1 {
		t.Errorf("disabled Find past end = %d, want -1", got)
	}

	if _, _, active := tracker.Stats(); active {
		t.Error("Stats() reports an abandoned tracker as active")
	}
}

// A prefilter that skips large gaps stays active.
func TestTrackerKeepsSparseCandidates(t *testing.T) {
	haystack := strings.Repeat("x", 99) + "a"
	haystack = strings.Repeat(haystack, 300)
	tracker := NewTrackerWithConfig(newMemchrPrefilter('a', false), TrackerConfig{
		CheckInterval: 8,
		MinSkip:       1.0,
		WarmupPeriod:  16,
	})

	for at := 0; ; {
		pos := tracker.Find(haystack, at)
		if pos == -1 {
			break
		}
		at = pos + 1
	}

	if !tracker.IsActive() {
		t.Error("tracker with sparse candidates should stay active")
	}
	if candidates, _, _ := tracker.Stats(); candidates != 300 {
		t.Errorf("candidates = %d, want 300", candidates)
	}
}
