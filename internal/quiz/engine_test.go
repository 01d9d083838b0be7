package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"aula-quiz-client/internal/domain"
)

type fakeCountdownStore struct {
	mu     sync.Mutex
	values map[int]int // sectionID -> seconds
	saves  int
}

func newFakeCountdownStore() *fakeCountdownStore {
	return &fakeCountdownStore{values: make(map[int]int)}
}

func (f *fakeCountdownStore) Remaining(_ context.Context, _, sectionID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.values[sectionID]; ok {
		return v, nil
	}
	return 0, domain.ErrNoCountdown
}

func (f *fakeCountdownStore) Save(_ context.Context, _, sectionID, seconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[sectionID] = seconds
	f.saves++
	return nil
}

func (f *fakeCountdownStore) Clear(_ context.Context, _, sectionID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, sectionID)
	return nil
}

func (f *fakeCountdownStore) persisted(sectionID int) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[sectionID]
	return v, ok
}

func (f *fakeCountdownStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	answers []domain.Answer
	err     error
}

func (f *fakeSubmitter) SaveUserAnswers(_ context.Context, answers []domain.Answer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.answers = answers
	return f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func timedSection(minutes int) domain.Section {
	return domain.Section{ID: 5, CourseID: 1, Name: "Unidad 1", TotalTime: minutes}
}

// Started engines are stopped so no tick goroutine outlives a test.
func startEngine(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start engine: %v", err)
	}
	t.Cleanup(e.Stop)
}

func TestStartFreshUsesFullLimit(t *testing.T) {
	store := newFakeCountdownStore()
	e := NewEngine(timedSection(3), 1, store, &fakeSubmitter{}, NewCollector(), WithTickInterval(time.Hour))
	startEngine(t, e)

	if got := e.Remaining(); got != 180 {
		t.Fatalf("expected 180 seconds for a 3 minute section, got %d", got)
	}
	if e.State() != StateRunning {
		t.Fatalf("expected running state, got %v", e.State())
	}
}

func TestStartResumesPersistedValue(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 42
	e := NewEngine(timedSection(3), 1, store, &fakeSubmitter{}, NewCollector(), WithTickInterval(time.Hour))
	startEngine(t, e)

	if got := e.Remaining(); got != 42 {
		t.Fatalf("expected resume at 42, got %d", got)
	}
}

func TestUntimedSectionStaysIdle(t *testing.T) {
	store := newFakeCountdownStore()
	e := NewEngine(timedSection(0), 1, store, &fakeSubmitter{}, NewCollector())
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if e.State() != StateIdle {
		t.Fatalf("expected idle state for untimed section, got %v", e.State())
	}
	if _, ok := store.persisted(5); ok {
		t.Fatalf("untimed section must not create countdown state")
	}
}

func TestTickDecrementsAndPersists(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 10
	e := NewEngine(timedSection(3), 1, store, &fakeSubmitter{}, NewCollector(), WithTickInterval(time.Hour))
	startEngine(t, e)

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if done := e.tick(ctx); done {
			t.Fatalf("tick %d ended the session early", i)
		}
	}
	if got := e.Remaining(); got != 6 {
		t.Fatalf("expected remaining 6 after 4 ticks, got %d", got)
	}
	if v, ok := store.persisted(5); !ok || v != 6 {
		t.Fatalf("expected persisted value 6, got %d (present=%v)", v, ok)
	}
}

func TestExpirySubmitsExactlyOnceAndClearsState(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 2
	submitter := &fakeSubmitter{}
	collector := NewCollector()
	collector.Select(11, 101)
	e := NewEngine(timedSection(3), 9, store, submitter, collector, WithTickInterval(time.Hour))
	startEngine(t, e)

	ctx := context.Background()
	e.tick(ctx) // 2 -> 1
	if done := e.tick(ctx); !done {
		t.Fatalf("expected expiry tick to end the loop")
	}

	if e.State() != StateTerminated {
		t.Fatalf("expected terminated after expiry, got %v", e.State())
	}
	if submitter.callCount() != 1 {
		t.Fatalf("expected exactly one submission, got %d", submitter.callCount())
	}
	if _, ok := store.persisted(5); ok {
		t.Fatalf("expected countdown state cleared on expiry")
	}
	if len(submitter.answers) != 1 || submitter.answers[0].UserID != 9 || submitter.answers[0].OptionID != 101 {
		t.Fatalf("unexpected submitted answers: %+v", submitter.answers)
	}

	// A manual submit after expiry must not reach the network.
	if err := e.Submit(ctx); err != domain.ErrSessionTerminated {
		t.Fatalf("expected ErrSessionTerminated, got %v", err)
	}
	if submitter.callCount() != 1 {
		t.Fatalf("manual submit after expiry made a network call")
	}
}

func TestExpirySubmissionFailureStillTerminates(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 1
	submitter := &fakeSubmitter{err: errors.New("api down")}
	e := NewEngine(timedSection(3), 9, store, submitter, NewCollector(), WithTickInterval(time.Hour))
	startEngine(t, e)

	e.tick(context.Background())

	if e.State() != StateTerminated {
		t.Fatalf("expiry-path failure must still terminate, got %v", e.State())
	}
	if _, ok := store.persisted(5); ok {
		t.Fatalf("expected countdown state cleared even when expiry submission fails")
	}
}

func TestManualSubmitClearsStateAndTerminates(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 100
	submitter := &fakeSubmitter{}
	collector := NewCollector()
	collector.Select(11, 101)
	collector.Select(12, 202)
	e := NewEngine(timedSection(3), 9, store, submitter, collector, WithTickInterval(time.Hour))
	startEngine(t, e)

	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if e.State() != StateTerminated {
		t.Fatalf("expected terminated, got %v", e.State())
	}
	if _, ok := store.persisted(5); ok {
		t.Fatalf("expected countdown cleared on manual submit")
	}
	if submitter.callCount() != 1 {
		t.Fatalf("expected one submission, got %d", submitter.callCount())
	}
	if len(submitter.answers) != 2 || submitter.answers[0].QuestionID != 11 {
		t.Fatalf("expected answers ordered by question id, got %+v", submitter.answers)
	}

	if err := e.Submit(context.Background()); err != domain.ErrSessionTerminated {
		t.Fatalf("expected ErrSessionTerminated on repeat submit, got %v", err)
	}
}

func TestManualSubmitFailureIsRecoverable(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 100
	submitter := &fakeSubmitter{err: errors.New("timeout")}
	e := NewEngine(timedSection(3), 9, store, submitter, NewCollector(), WithTickInterval(time.Hour))
	startEngine(t, e)

	if err := e.Submit(context.Background()); err == nil {
		t.Fatalf("expected submission error")
	}
	if e.State() != StateRunning {
		t.Fatalf("failed manual submit must leave the session running, got %v", e.State())
	}
	if _, ok := store.persisted(5); !ok {
		t.Fatalf("failed manual submit must keep persisted countdown")
	}

	// Retry succeeds once the API recovers.
	submitter.err = nil
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if e.State() != StateTerminated {
		t.Fatalf("expected terminated after retry, got %v", e.State())
	}
}

func TestSubmitWithoutIdentityAbortsBeforeNetwork(t *testing.T) {
	store := newFakeCountdownStore()
	submitter := &fakeSubmitter{}
	e := NewEngine(timedSection(0), 0, store, submitter, NewCollector())
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := e.Submit(context.Background()); err != domain.ErrMissingIdentity {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
	if submitter.callCount() != 0 {
		t.Fatalf("identity failure must not reach the network")
	}
}

func TestStopCancelsTickerButKeepsPersistedValue(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 30
	e := NewEngine(timedSection(3), 1, store, &fakeSubmitter{}, NewCollector(), WithTickInterval(5*time.Millisecond))
	startEngine(t, e)

	// Let a few real ticks land, then tear down.
	time.Sleep(30 * time.Millisecond)
	e.Stop()
	// Let any tick already past the state check finish its save.
	time.Sleep(10 * time.Millisecond)
	saves := store.saveCount()
	remaining, ok := store.persisted(5)
	if !ok || remaining <= 0 || remaining >= 30 {
		t.Fatalf("expected a decremented persisted value, got %d (present=%v)", remaining, ok)
	}

	time.Sleep(30 * time.Millisecond)
	if store.saveCount() != saves {
		t.Fatalf("ticks kept persisting after Stop: %d -> %d", saves, store.saveCount())
	}
	if v, _ := store.persisted(5); v != remaining {
		t.Fatalf("teardown must leave the last persisted value intact")
	}
}

func TestSubscribeReceivesTickSnapshots(t *testing.T) {
	store := newFakeCountdownStore()
	store.values[5] = 10
	e := NewEngine(timedSection(3), 1, store, &fakeSubmitter{}, NewCollector(), WithTickInterval(time.Hour))
	startEngine(t, e)

	updates, cancel := e.Subscribe()
	defer cancel()

	first := <-updates
	if first.Remaining != 10 || first.State != "running" {
		t.Fatalf("unexpected initial snapshot: %+v", first)
	}

	e.tick(context.Background())
	snap := <-updates
	if snap.Remaining != 9 {
		t.Fatalf("expected snapshot with remaining 9, got %+v", snap)
	}

	e.Select(11, 101)
	snap = <-updates
	if snap.Answered != 1 {
		t.Fatalf("expected answered count 1, got %+v", snap)
	}
}
