package scorer

import (
	"context"
	"fmt"

	"github.com/prefmesh/prefmesh/region"
)

// ScoreRecord is one agent's own evaluation of one advertisement.
// Immutable once produced.
type ScoreRecord struct {
	AgentID        string  `json:"agent_id"`
	AdID           string  `json:"ad_id"`
	Liking         float64 `json:"liking"`          // [0,5]
	PurchaseIntent float64 `json:"purchase_intent"` // [0,5]
	Commentary     string  `json:"commentary"`
	Confidence     float64 `json:"confidence"` // [0,1]
}

// Validate checks the record's score ranges.
func (r ScoreRecord) Validate() error {
	if r.AgentID == "" {
		return fmt.Errorf("score record missing agent_id")
	}
	if r.Liking < 0 || r.Liking > 5 {
		return fmt.Errorf("agent %s: liking %v outside [0,5]", r.AgentID, r.Liking)
	}
	if r.PurchaseIntent < 0 || r.PurchaseIntent > 5 {
		return fmt.Errorf("agent %s: purchase_intent %v outside [0,5]", r.AgentID, r.PurchaseIntent)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("agent %s: confidence %v outside [0,1]", r.AgentID, r.Confidence)
	}
	return nil
}

// Scorer produces an agent's own score for an ad. Implementations are
// expected to block until a result is available or ctx is done; the engine
// applies a uniform per-call timeout around each invocation.
type Scorer interface {
	Score(ctx context.Context, agentID, adID, adContent string) (ScoreRecord, error)
}

// ProfileSource resolves a persona profile for prompt rendering. The persona
// registry satisfies this interface.
type ProfileSource interface {
	Profile(agentID string) (region.Region, error)
}
