package sweep_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/planify/planify/internal/sweep"
	"github.com/planify/planify/internal/tracker"
)

type memBackend struct{}

func (memBackend) Load() (*tracker.Snapshot, error) { return nil, nil }
func (memBackend) Save(*tracker.Snapshot) error     { return nil }

func newTestStore(t *testing.T, at time.Time) *tracker.Store {
	t.Helper()
	n := 0
	return tracker.NewStore(memBackend{},
		tracker.WithClock(func() time.Time { return at }),
		tracker.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

// ---------------------------------------------------------------------------
// Sweep
// ---------------------------------------------------------------------------

func Test_Sweep_GeneratesDueTasks(t *testing.T) {
	t.Parallel()
	// Wednesday.
	store := newTestStore(t, time.Date(2024, time.June, 12, 6, 0, 0, 0, time.UTC))
	store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})

	sweep.New(store, time.Hour, nil).Sweep()

	if got := len(store.Snapshot().Tasks); got != 2 {
		t.Errorf("expected template plus generated task, got %d tasks", got)
	}
}

func Test_Sweep_SecondRunSameDayIsIdempotent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, time.Date(2024, time.June, 12, 6, 0, 0, 0, time.UTC))
	store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})

	s := sweep.New(store, time.Hour, nil)
	s.Sweep()
	s.Sweep()

	if got := len(store.Snapshot().Tasks); got != 2 {
		t.Errorf("expected no duplicate generation, got %d tasks", got)
	}
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func Test_Run_SweepsImmediatelyAndStopsOnCancel(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, time.Date(2024, time.June, 12, 6, 0, 0, 0, time.UTC))
	store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweep.New(store, time.Hour, nil).Run(ctx)
		close(done)
	}()

	// The initial sweep runs before the first tick.
	deadline := time.After(2 * time.Second)
	for len(store.Snapshot().Tasks) < 2 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the initial sweep")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Run to stop")
	}
}
