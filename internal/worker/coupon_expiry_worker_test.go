package worker

import (
	"context"
	"testing"
	"time"
)

type mockExpiredCouponStore struct {
	calls chan struct{}
}

func (m *mockExpiredCouponStore) DeactivateExpired(ctx context.Context) (int64, error) {
	select {
	case m.calls <- struct{}{}:
	default:
	}
	return 1, nil
}

func TestCouponExpiryWorkerSweepsAndStops(t *testing.T) {
	store := &mockExpiredCouponStore{calls: make(chan struct{}, 1)}
	w := NewCouponExpiryWorker(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-store.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never ran a sweep")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
