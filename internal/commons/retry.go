package commons

import (
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	apperrors "warung/internal/errors"
)

// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms).
var retryBackoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

// RetryOnDeadlock runs op up to maxAttempts times, retrying only on MySQL
// deadlock/lock-wait errors. Retries are bounded: after the last attempt the
// failure surfaces as a DeadlockError instead of looping.
func RetryOnDeadlock(logger *zap.Logger, maxAttempts int, op func() error) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		if !IsDeadlockError(err) {
			return err
		}

		if attempt < maxAttempts {
			backoff := retryBackoffs[(attempt-1)%len(retryBackoffs)]
			// Jitter: ±20% of the backoff base.
			jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			logger.Warn("deadlock detected, retrying",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts))
		}
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

func IsDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
