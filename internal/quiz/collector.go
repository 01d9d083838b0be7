package quiz

import "sync"

// Collector holds the current selection per question for one quiz-taking
// session. Selecting again for the same question overwrites the prior choice.
// A collector is scoped to a single session and discarded with it.
type Collector struct {
	mu         sync.Mutex
	selections map[int]int // questionID -> optionID
}

func NewCollector() *Collector {
	return &Collector{selections: make(map[int]int)}
}

// Select records optionID as the answer for questionID. The option is trusted
// to belong to the question's option set; the authoring flow guarantees it.
func (c *Collector) Select(questionID, optionID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections[questionID] = optionID
}

// Snapshot returns a copy of all current selections. Used at submission time.
func (c *Collector) Snapshot() map[int]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]int, len(c.selections))
	for q, o := range c.selections {
		out[q] = o
	}
	return out
}

// Len reports how many questions currently have a selection.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selections)
}
