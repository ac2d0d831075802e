package scorer

import (
	"context"
	"fmt"
	"sync"
)

// MockScorer is an in-memory Scorer for tests and examples. Canned records
// are keyed by (agent, ad); agents without a canned record receive a neutral
// deterministic score so batch runs do not require full seeding.
type MockScorer struct {
	mu      sync.RWMutex
	records map[string]ScoreRecord
	errs    map[string]error
	calls   map[string]int
}

// NewMockScorer constructs an empty MockScorer.
func NewMockScorer() *MockScorer {
	return &MockScorer{
		records: make(map[string]ScoreRecord),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func mockKey(agentID, adID string) string { return agentID + "|" + adID }

// AddRecord registers a canned record for an (agent, ad) pair.
func (m *MockScorer) AddRecord(rec ScoreRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[mockKey(rec.AgentID, rec.AdID)] = rec
}

// FailWith makes scoring fail for an (agent, ad) pair.
func (m *MockScorer) FailWith(agentID, adID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[mockKey(agentID, adID)] = err
}

// Calls returns how many times the pair was scored.
func (m *MockScorer) Calls(agentID, adID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[mockKey(agentID, adID)]
}

// Score implements Scorer.
func (m *MockScorer) Score(ctx context.Context, agentID, adID, adContent string) (ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return ScoreRecord{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := mockKey(agentID, adID)
	m.calls[key]++

	if err, ok := m.errs[key]; ok {
		return ScoreRecord{}, err
	}
	if rec, ok := m.records[key]; ok {
		return rec, nil
	}
	return ScoreRecord{
		AgentID:        agentID,
		AdID:           adID,
		Liking:         3.0,
		PurchaseIntent: 3.0,
		Commentary:     fmt.Sprintf("mock evaluation for %s", agentID),
		Confidence:     0.5,
	}, nil
}
