package commons

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	apperrors "warung/internal/errors"
)

func TestRetryOnDeadlock_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := RetryOnDeadlock(zap.NewNop(), 3, func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 attempt, got %d", calls)
	}
}

func TestRetryOnDeadlock_RecoversAfterDeadlock(t *testing.T) {
	calls := 0
	err := RetryOnDeadlock(zap.NewNop(), 3, func() error {
		calls++
		if calls < 2 {
			return &mysql.MySQLError{Number: 1213}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestRetryOnDeadlock_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := RetryOnDeadlock(zap.NewNop(), 3, func() error {
		calls++
		return &mysql.MySQLError{Number: 1213}
	})

	if _, ok := apperrors.IsDeadlockError(err); !ok {
		t.Fatalf("expected DeadlockError, got %T", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestRetryOnDeadlock_NonDeadlockNotRetried(t *testing.T) {
	opErr := errors.New("constraint violation")
	calls := 0
	err := RetryOnDeadlock(zap.NewNop(), 3, func() error {
		calls++
		return opErr
	})

	if !errors.Is(err, opErr) {
		t.Errorf("expected original error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 attempt, got %d", calls)
	}
}

func TestIsDeadlockError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&mysql.MySQLError{Number: 1213}, true},
		{&mysql.MySQLError{Number: 1205}, true},
		{&mysql.MySQLError{Number: 1062}, false},
		{errors.New("plain error"), false},
		{nil, false},
	}

	for _, tc := range cases {
		if got := IsDeadlockError(tc.err); got != tc.want {
			t.Errorf("IsDeadlockError(%v): expected %v, got %v", tc.err, tc.want, got)
		}
	}
}

func TestIsDeadlockError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("committing order: %w", &mysql.MySQLError{Number: 1213})
	if !IsDeadlockError(wrapped) {
		t.Errorf("expected wrapped deadlock error to be detected")
	}
}
