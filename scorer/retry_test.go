package scorer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyScorer fails a fixed number of times before succeeding.
type flakyScorer struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakyScorer) Score(_ context.Context, agentID, adID, _ string) (ScoreRecord, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return ScoreRecord{}, errors.New("upstream unavailable")
	}
	return ScoreRecord{AgentID: agentID, AdID: adID, Liking: 3.0, PurchaseIntent: 3.0, Confidence: 0.5}, nil
}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyScorer{failures: 2}
	s := WithRetry(inner, RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, Multiplier: 2}, nil)

	rec, err := s.Score(t.Context(), "Tokyo", "ad_001", "content")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", rec.AgentID)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	inner := &flakyScorer{failures: 10}
	s := WithRetry(inner, RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, Multiplier: 2}, nil)

	_, err := s.Score(t.Context(), "Tokyo", "ad_001", "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestWithRetry_ZeroPolicyMeansSingleAttempt(t *testing.T) {
	inner := &flakyScorer{failures: 1}
	s := WithRetry(inner, RetryPolicy{}, nil)

	_, err := s.Score(t.Context(), "Tokyo", "ad_001", "content")
	require.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestWithRetry_ContextCancelAbortsBackoff(t *testing.T) {
	inner := &flakyScorer{failures: 10}
	s := WithRetry(inner, RetryPolicy{MaxAttempts: 5, InitialBackoff: time.Hour}, nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		_, err := s.Score(ctx, "Tokyo", "ad_001", "content")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not abort on context cancellation")
	}
	assert.Equal(t, int32(1), inner.calls.Load())
}
