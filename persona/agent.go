package persona

import (
	"slices"
	"sync"

	"github.com/prefmesh/prefmesh/region"
	"github.com/prefmesh/prefmesh/scorer"
)

// Agent is one prefecture's persona instance. It owns an immutable profile
// plus a cached history of the scores it has produced. Instances live for
// the registry's lifetime and are destroyed on cache invalidation.
type Agent struct {
	id      string
	profile region.Region

	mu      sync.RWMutex
	history []scorer.ScoreRecord
}

func newAgent(profile region.Region) *Agent {
	return &Agent{id: profile.ID, profile: profile}
}

// ID returns the agent's region id.
func (a *Agent) ID() string { return a.id }

// Profile returns the agent's region profile.
func (a *Agent) Profile() region.Region { return a.profile }

// RecordScore appends a produced score to the agent's history.
func (a *Agent) RecordScore(rec scorer.ScoreRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, rec)
}

// History returns a copy of the agent's score history in production order.
func (a *Agent) History() []scorer.ScoreRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.history)
}

// LastScore returns the most recent score for an ad, if any.
func (a *Agent) LastScore(adID string) (scorer.ScoreRecord, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := len(a.history) - 1; i >= 0; i-- {
		if a.history[i].AdID == adID {
			return a.history[i], true
		}
	}
	return scorer.ScoreRecord{}, false
}
