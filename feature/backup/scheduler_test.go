package backup

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSchedulerRunsFirstTickAndStops(t *testing.T) {
	svc := testService(t, testDB(t))
	sched := NewScheduler(svc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	// The first tick runs before the ticker starts, so a snapshot appears
	// almost immediately.
	deadline := time.After(5 * time.Second)
	for {
		if _, err := svc.store.Latest(context.Background()); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("scheduler did not create a snapshot")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
