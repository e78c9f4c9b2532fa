package browser

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollCountReturnsFirstMatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// The node appears a couple of polls after the lookup starts, like
	// a dialog rendering just after its triggering click.
	calls := 0
	n, err := pollCount(ctx, time.Millisecond, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, nil
		}
		return 2, nil
	})
	if err != nil {
		t.Fatalf("pollCount: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if calls != 3 {
		t.Errorf("lookups = %d, want 3", calls)
	}
}

func TestPollCountDeadlineMeansZero(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := pollCount(ctx, 5*time.Millisecond, func(context.Context) (int, error) {
		return 0, nil
	})
	if err != nil {
		t.Fatalf("an elapsed wait is not an error: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestPollCountPropagatesLookupError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	boom := errors.New("session gone")
	_, err := pollCount(ctx, time.Millisecond, func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the lookup failure", err)
	}
}

func TestPollCountHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pollCount(ctx, time.Millisecond, func(context.Context) (int, error) {
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
