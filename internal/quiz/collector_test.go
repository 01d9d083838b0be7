package quiz

import "testing"

func TestCollectorOverwritesPerQuestion(t *testing.T) {
	c := NewCollector()
	c.Select(1, 10)
	c.Select(1, 20)

	snap := c.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected one selection, got %d", len(snap))
	}
	if snap[1] != 20 {
		t.Fatalf("expected later selection to win, got option %d", snap[1])
	}
}

func TestCollectorAccumulatesDistinctQuestions(t *testing.T) {
	c := NewCollector()
	c.Select(1, 10)
	c.Select(2, 21)
	c.Select(3, 33)

	snap := c.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected three selections, got %d", len(snap))
	}
	if snap[2] != 21 {
		t.Fatalf("expected option 21 for question 2, got %d", snap[2])
	}
	if c.Len() != 3 {
		t.Fatalf("expected Len 3, got %d", c.Len())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := NewCollector()
	c.Select(1, 10)

	snap := c.Snapshot()
	snap[1] = 99
	if got := c.Snapshot()[1]; got != 10 {
		t.Fatalf("mutating a snapshot leaked into the collector: %d", got)
	}
}
