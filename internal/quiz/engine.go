package quiz

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aula-quiz-client/internal/domain"
)

// State is the lifecycle phase of a quiz-taking session.
type State int

const (
	// StateIdle means the section has no time limit; only manual submission ends the session.
	StateIdle State = iota
	// StateRunning means the countdown is ticking.
	StateRunning
	// StateExpired means time ran out; the automatic submission is underway.
	StateExpired
	// StateTerminated is terminal; no further ticks or submissions happen.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// CountdownStore persists remaining seconds per (user, section) so an
// interrupted session resumes instead of resetting.
type CountdownStore interface {
	Remaining(ctx context.Context, userID, sectionID int) (int, error)
	Save(ctx context.Context, userID, sectionID, seconds int) error
	Clear(ctx context.Context, userID, sectionID int) error
}

// Submitter sends the collected answers to the remote API. The gateway
// satisfies this; tests use fakes.
type Submitter interface {
	SaveUserAnswers(ctx context.Context, answers []domain.Answer) error
}

// Snapshot is a point-in-time view of the session, broadcast to subscribers.
type Snapshot struct {
	AttemptID string `json:"attemptId"`
	SectionID int    `json:"sectionId"`
	State     string `json:"state"`
	Remaining int    `json:"remaining"`
	Answered  int    `json:"answered"`
}

// Engine drives one section's countdown and guarantees exactly-once
// submission across the expiry and manual paths. All state transitions
// happen under a single mutex; the submission network call itself runs
// outside the lock, fenced by the inFlight flag.
type Engine struct {
	attemptID string
	section   domain.Section
	userID    int
	store     CountdownStore
	submitter Submitter
	collector *Collector
	interval  time.Duration

	mu          sync.Mutex
	state       State
	remaining   int
	inFlight    bool
	cancelTick  context.CancelFunc
	subscribers map[chan Snapshot]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithTickInterval overrides the one-second tick, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

func NewEngine(section domain.Section, userID int, store CountdownStore, submitter Submitter, collector *Collector, opts ...Option) *Engine {
	e := &Engine{
		attemptID:   uuid.NewString(),
		section:     section,
		userID:      userID,
		store:       store,
		submitter:   submitter,
		collector:   collector,
		interval:    time.Second,
		state:       StateIdle,
		subscribers: make(map[chan Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AttemptID identifies this session instance.
func (e *Engine) AttemptID() string { return e.attemptID }

// Start initializes the countdown. Sections without a time limit stay Idle.
// A persisted remaining value for this section resumes the prior countdown;
// otherwise the countdown begins at the section's full limit.
func (e *Engine) Start(ctx context.Context) error {
	if e.section.TotalTime <= 0 {
		return nil
	}

	remaining := e.section.TotalTime * 60
	saved, err := e.store.Remaining(ctx, e.userID, e.section.ID)
	switch {
	case err == nil && saved > 0:
		remaining = saved
	case err != nil && !errors.Is(err, domain.ErrNoCountdown):
		return err
	}

	tickCtx, cancel := context.WithCancel(ctx)

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		cancel()
		return domain.ErrSessionTerminated
	}
	e.remaining = remaining
	e.state = StateRunning
	e.cancelTick = cancel
	e.broadcastLocked()
	e.mu.Unlock()

	go e.run(tickCtx)
	return nil
}

func (e *Engine) run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Teardown: the last persisted value stays put so a later
			// session resumes where this one stopped.
			return
		case <-ticker.C:
			if done := e.tick(ctx); done {
				return
			}
		}
	}
}

// tick decrements and persists the countdown. Returns true when the tick
// loop must stop (expiry or a state change from another path).
func (e *Engine) tick(ctx context.Context) bool {
	e.mu.Lock()
	if e.state != StateRunning {
		e.mu.Unlock()
		return true
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.state = StateExpired
		e.broadcastLocked()
		e.mu.Unlock()
		e.expire(ctx)
		return true
	}
	remaining := e.remaining
	e.broadcastLocked()
	e.mu.Unlock()

	if err := e.store.Save(ctx, e.userID, e.section.ID, remaining); err != nil {
		log.Printf("countdown save failed for section %d: %v", e.section.ID, err)
	}
	return false
}

// expire runs the expiry-path submission. Time is gone regardless of the
// outcome: the persisted countdown is cleared and the session terminates
// even if the network call fails.
func (e *Engine) expire(ctx context.Context) {
	if err := e.store.Clear(ctx, e.userID, e.section.ID); err != nil {
		log.Printf("countdown clear failed for section %d: %v", e.section.ID, err)
	}

	e.mu.Lock()
	if e.inFlight || e.state == StateTerminated {
		// A manual submission won the race; it owns termination.
		e.mu.Unlock()
		return
	}
	e.inFlight = true
	e.mu.Unlock()

	if e.userID <= 0 {
		log.Printf("expiry submission aborted for section %d: %v", e.section.ID, domain.ErrMissingIdentity)
	} else if err := e.submitter.SaveUserAnswers(ctx, e.answers()); err != nil {
		log.Printf("expiry submission failed for section %d: %v", e.section.ID, err)
	}

	e.mu.Lock()
	e.inFlight = false
	e.state = StateTerminated
	e.broadcastLocked()
	e.mu.Unlock()
}

// Submit runs the manual submission path. The caller is expected to have
// confirmed with the user already. On failure before expiry the session
// stays recoverable: state and persisted countdown are untouched so the
// user can retry.
func (e *Engine) Submit(ctx context.Context) error {
	e.mu.Lock()
	switch {
	case e.state == StateTerminated || e.state == StateExpired:
		e.mu.Unlock()
		return domain.ErrSessionTerminated
	case e.inFlight:
		e.mu.Unlock()
		return domain.ErrSubmissionInFlight
	case e.userID <= 0:
		e.mu.Unlock()
		return domain.ErrMissingIdentity
	}
	e.inFlight = true
	e.mu.Unlock()

	err := e.submitter.SaveUserAnswers(ctx, e.answers())

	e.mu.Lock()
	e.inFlight = false
	if err != nil {
		if e.state == StateExpired {
			// Expiry fired while this submission was in flight; its own
			// attempt was suppressed, so finalize here.
			e.state = StateTerminated
			e.broadcastLocked()
		}
		e.mu.Unlock()
		return err
	}
	hadTimer := e.state == StateRunning || e.state == StateExpired
	e.state = StateTerminated
	cancel := e.cancelTick
	e.cancelTick = nil
	e.broadcastLocked()
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if hadTimer {
		if err := e.store.Clear(ctx, e.userID, e.section.ID); err != nil {
			log.Printf("countdown clear failed for section %d: %v", e.section.ID, err)
		}
	}
	return nil
}

// Select records an answer and broadcasts the updated answered count.
func (e *Engine) Select(questionID, optionID int) {
	e.collector.Select(questionID, optionID)
	e.mu.Lock()
	e.broadcastLocked()
	e.mu.Unlock()
}

// Stop cancels the tick loop without clearing persisted countdown state.
// Used on teardown (navigating away); returning to the section resumes.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancelTick
	e.cancelTick = nil
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// State returns the current lifecycle phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Remaining returns the current countdown value in seconds.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// Snapshot returns the current session view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe returns a channel receiving session snapshots, starting with the
// current one. The caller must invoke the cancel function to avoid leaks.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	initial := e.snapshotLocked()
	e.mu.Unlock()

	ch <- initial

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) broadcastLocked() {
	snap := e.snapshotLocked()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow reader never blocks a tick.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		AttemptID: e.attemptID,
		SectionID: e.section.ID,
		State:     e.state.String(),
		Remaining: e.remaining,
		Answered:  e.collector.Len(),
	}
}

// answers builds the submission payload from the collector, ordered by
// question id for stable requests.
func (e *Engine) answers() []domain.Answer {
	selections := e.collector.Snapshot()
	out := make([]domain.Answer, 0, len(selections))
	for questionID, optionID := range selections {
		out = append(out, domain.Answer{
			UserID:     e.userID,
			QuestionID: questionID,
			OptionID:   optionID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}
