package resilience

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func fail() error    { return errBoom }
func succeed() error { return nil }

func newTestBreaker(t *testing.T, threshold, halfOpen int) (*CircuitBreaker, *time.Time, *[]string) {
	t.Helper()

	var transitions []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   halfOpen,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, string(from)+">"+string(to))
		},
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now, &transitions
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now, transitions := newTestBreaker(t, 2, 1)

	if err := b.Do(fail, nil); !errors.Is(err, errBoom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(fail, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Do(func() error { called = true; return nil }, nil)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected rejected call, got err=%v called=%v", err, called)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Do(succeed, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []string{"closed>open", "open>half_open", "half_open>closed"}
	if len(*transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", *transitions)
	}
	for i := range want {
		if (*transitions)[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", *transitions)
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now, _ := newTestBreaker(t, 1, 1)

	_ = b.Do(fail, nil)
	*now = now.Add(6 * time.Second)
	_ = b.Do(fail, nil)

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened breaker, got %s", state)
	}
}

func TestCircuitBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	b, _, _ := newTestBreaker(t, 1, 1)
	notCounted := func(error) bool { return false }

	for range 3 {
		if err := b.Do(fail, notCounted); !errors.Is(err, errBoom) {
			t.Fatalf("expected fn error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1})
	for range 3 {
		if err := b.Do(fail, nil); !errors.Is(err, errBoom) {
			t.Fatalf("expected fn error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("disabled breaker should stay closed, got %s", state)
	}
}
