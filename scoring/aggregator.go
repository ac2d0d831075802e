package scoring

import (
	"errors"
	"fmt"

	"github.com/prefmesh/prefmesh/logging"
	"github.com/prefmesh/prefmesh/topology"
)

// ErrInvalidScore is returned when the agent's own score is missing a
// dimension. An aggregate must be anchored to a real own-assessment, so this
// is never defaulted away.
var ErrInvalidScore = errors.New("invalid own score")

const (
	// ownWeight is the fixed base weight of the agent's own score.
	ownWeight = 1.0
	// neighborCap limits neighbor influence to half the own weight so no
	// single neighbor can dominate the aggregate.
	neighborCap = 0.5

	scoreMin = 0.0
	scoreMax = 5.0
)

// Score is a liking / purchase-intent pair as exchanged with collaborators.
// Fields are pointers so a missing dimension in interchange data stays
// distinguishable from an explicit zero.
type Score struct {
	Liking         *float64 `json:"liking,omitempty"`
	PurchaseIntent *float64 `json:"purchase_intent,omitempty"`
}

// NewScore builds a fully-populated Score.
func NewScore(liking, purchaseIntent float64) Score {
	return Score{Liking: &liking, PurchaseIntent: &purchaseIntent}
}

func (s Score) complete() bool {
	return s.Liking != nil && s.PurchaseIntent != nil
}

// AggregateResult is the outcome of one aggregation call. Derived, not
// persisted.
type AggregateResult struct {
	AggregateLiking         float64 `json:"aggregate_liking"`
	AggregatePurchaseIntent float64 `json:"aggregate_purchase_intent"`
	// NeighborInfluence records the influence weight actually applied per
	// neighbor, for transparency and reporting.
	NeighborInfluence map[string]float64 `json:"neighbor_influence"`
	Explanation       string             `json:"explanation"`
}

// Aggregator blends an agent's own score with similarity-weighted neighbor
// scores. Pure computation over read-only tables; safe for concurrent use.
type Aggregator struct {
	topo   *topology.Provider
	sim    *topology.Similarity
	logger logging.Logger
}

// NewAggregator builds an Aggregator over the given topology and similarity
// tables.
func NewAggregator(topo *topology.Provider, sim *topology.Similarity, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Aggregator{topo: topo, sim: sim, logger: logger}
}

// Aggregate combines the agent's own score with the supplied neighbor
// scores.
//
// Only neighbors present in both the topology's neighbor list and
// neighborScores contribute; a pair absent from the similarity table gets
// zero influence, which is not an error. A neighbor entry missing a
// dimension is skipped with a warning instead of aborting the whole call.
// Both aggregate dimensions are clamped to [0,5] so floating error or
// out-of-range inputs cannot escape.
func (a *Aggregator) Aggregate(agentID string, own Score, neighborScores map[string]Score) (*AggregateResult, error) {
	if !own.complete() {
		return nil, fmt.Errorf("%w: agent %s own score must include liking and purchase_intent", ErrInvalidScore, agentID)
	}

	neighbors, err := a.topo.Neighbors(agentID)
	if err != nil {
		return nil, err
	}

	totalWeight := ownWeight
	weightedLiking := *own.Liking * ownWeight
	weightedPurchaseIntent := *own.PurchaseIntent * ownWeight
	influence := make(map[string]float64)

	// Iterate the topology's ordered neighbor list for determinism.
	for _, neighborID := range neighbors {
		score, ok := neighborScores[neighborID]
		if !ok {
			continue
		}
		if !score.complete() {
			a.logger.Warn("skipping malformed neighbor record", "agent_id", agentID, "neighbor_id", neighborID)
			continue
		}

		w := a.sim.Weight(agentID, neighborID) * neighborCap
		if w == 0 {
			continue
		}
		influence[neighborID] = w

		weightedLiking += *score.Liking * w
		weightedPurchaseIntent += *score.PurchaseIntent * w
		totalWeight += w

		a.logger.Debug("applied neighbor influence", "agent_id", agentID, "neighbor_id", neighborID, "weight", w)
	}

	result := &AggregateResult{
		AggregateLiking:         clamp(weightedLiking / totalWeight),
		AggregatePurchaseIntent: clamp(weightedPurchaseIntent / totalWeight),
		NeighborInfluence:       influence,
	}
	if len(influence) == 0 {
		result.Explanation = "no neighbor data used; aggregate equals own score"
	} else {
		result.Explanation = fmt.Sprintf("weighted average of own score (weight %.1f) and %d neighbors weighted by regional similarity", ownWeight, len(influence))
	}
	return result, nil
}

func clamp(v float64) float64 {
	if v < scoreMin {
		return scoreMin
	}
	if v > scoreMax {
		return scoreMax
	}
	return v
}
