package store

import (
	"sync"

	"github.com/prefmesh/prefmesh/scoring"
	"github.com/prefmesh/prefmesh/topology"
)

// InMemoryStore is a volatile ScoreStore keeping per-ad scores in a process
// local map. It is safe for concurrent access and best suited for tests or
// single-process runs. Lookups return copies so an in-flight aggregation
// never observes a partial overwrite.
type InMemoryStore struct {
	topo *topology.Provider

	mu     sync.RWMutex
	scores map[string]map[string]scoring.Score // adID -> agentID -> score

	// maxNeighbors bounds how many neighbors one lookup returns; 0 means
	// unlimited.
	maxNeighbors int
}

// Options configure the in-memory score store.
type Options struct {
	// MaxNeighbors limits how many neighbor scores a single lookup returns,
	// taken in the topology's neighbor order. 0 means unlimited.
	MaxNeighbors int
}

// NewInMemoryStore constructs an empty in-memory score store over the given
// topology.
func NewInMemoryStore(topo *topology.Provider, optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		topo:         topo,
		scores:       make(map[string]map[string]scoring.Score),
		maxNeighbors: opts.MaxNeighbors,
	}
}

// Put records an agent's score for an ad, overwriting any previous entry.
func (s *InMemoryStore) Put(adID, agentID string, score scoring.Score) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byAgent, ok := s.scores[adID]
	if !ok {
		byAgent = make(map[string]scoring.Score)
		s.scores[adID] = byAgent
	}
	byAgent[agentID] = score
}

// NeighborScores implements ScoreStore. It consults the topology for the
// agent's neighbor list and returns the stored scores of those neighbors for
// the ad. Unknown agents propagate topology.ErrUnknownRegion.
func (s *InMemoryStore) NeighborScores(agentID, adID string) (map[string]scoring.Score, error) {
	neighbors, err := s.topo.Neighbors(agentID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byAgent := s.scores[adID]
	out := make(map[string]scoring.Score)
	for _, neighborID := range neighbors {
		if s.maxNeighbors > 0 && len(out) >= s.maxNeighbors {
			break
		}
		if score, ok := byAgent[neighborID]; ok {
			out[neighborID] = score
		}
	}
	return out, nil
}
