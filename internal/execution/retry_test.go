package execution

import (
	"errors"
	"testing"
	"time"
)

func TestPollUntil(t *testing.T) {
	t.Run("stops early on match", func(t *testing.T) {
		attempts := 0
		value, ok, err := pollUntil(10, time.Millisecond, func() (string, bool, error) {
			attempts++
			if attempts == 3 {
				return "stone", true, nil
			}
			return "air", false, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || value != "stone" {
			t.Errorf("expected matched value stone, got %q (ok=%v)", value, ok)
		}
		if attempts != 3 {
			t.Errorf("expected 3 attempts, got %d", attempts)
		}
	})

	t.Run("respects the attempt budget", func(t *testing.T) {
		attempts := 0
		start := time.Now()
		value, ok, err := pollUntil(10, time.Millisecond, func() (string, bool, error) {
			attempts++
			return "dirt", false, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 10 {
			t.Errorf("expected exactly 10 attempts, got %d", attempts)
		}
		if ok {
			t.Error("expected no match")
		}
		if value != "dirt" {
			t.Errorf("expected last observed value dirt, got %q", value)
		}
		// 10 attempts with 1ms interval should finish well under a second.
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("poll took too long: %v", elapsed)
		}
	})

	t.Run("returns query errors immediately", func(t *testing.T) {
		boom := errors.New("boom")
		attempts := 0
		_, _, err := pollUntil(10, time.Millisecond, func() (string, bool, error) {
			attempts++
			return "", false, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", attempts)
		}
	})

	t.Run("clamps a non-positive budget to one attempt", func(t *testing.T) {
		attempts := 0
		_, _, _ = pollUntil(0, time.Millisecond, func() (string, bool, error) {
			attempts++
			return "", false, nil
		})
		if attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", attempts)
		}
	})
}
