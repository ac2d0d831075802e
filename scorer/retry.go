package scorer

import (
	"context"
	"fmt"
	"time"

	"github.com/prefmesh/prefmesh/logging"
)

// RetryPolicy controls retries of a failing scoring call. Zero value means a
// single attempt and no waiting.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// InitialBackoff is the wait before the first retry.
	InitialBackoff time.Duration
	// Multiplier scales the backoff after every retry. Values below 1 are
	// treated as 1 (constant backoff).
	Multiplier float64
}

// DefaultRetryPolicy retries twice with a short exponential backoff.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:    3,
	InitialBackoff: 500 * time.Millisecond,
	Multiplier:     2,
}

type retryScorer struct {
	inner  Scorer
	policy RetryPolicy
	logger logging.Logger
}

// WithRetry wraps a Scorer with the given retry policy. Context cancellation
// aborts the wait between attempts immediately.
func WithRetry(inner Scorer, policy RetryPolicy, logger logging.Logger) Scorer {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	return &retryScorer{inner: inner, policy: policy, logger: logger}
}

func (r *retryScorer) Score(ctx context.Context, agentID, adID, adContent string) (ScoreRecord, error) {
	backoff := r.policy.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		rec, err := r.inner.Score(ctx, agentID, adID, adContent)
		if err == nil {
			return rec, nil
		}
		lastErr = err
		if attempt == r.policy.MaxAttempts {
			break
		}
		r.logger.Warn("scoring attempt failed, retrying", "agent_id", agentID, "ad_id", adID, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ScoreRecord{}, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * r.policy.Multiplier)
	}

	return ScoreRecord{}, fmt.Errorf("scoring failed after %d attempts: %w", r.policy.MaxAttempts, lastErr)
}
