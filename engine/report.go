package engine

import (
	"sort"

	"github.com/prefmesh/prefmesh/scorer"
	"github.com/prefmesh/prefmesh/scoring"
)

// State tracks the lifecycle of one evaluation run.
type State string

const (
	// StatePending is the initial state before any scoring starts.
	StatePending State = "PENDING"
	// StateScoring is active while per-agent scoring calls are in flight.
	StateScoring State = "SCORING"
	// StateAggregating is active while neighbor aggregation runs.
	StateAggregating State = "AGGREGATING"
	// StateComplete is the terminal state when every agent succeeded.
	StateComplete State = "COMPLETE"
	// StatePartialFailure is the terminal state when one or more agents
	// errored during scoring. Successful results are still reported.
	StatePartialFailure State = "PARTIAL_FAILURE"
)

// AgentResult is one agent's successful outcome within a run.
type AgentResult struct {
	AgentID string                   `json:"agent_id"`
	Record  scorer.ScoreRecord       `json:"record"`
	// Aggregate is nil when aggregation was not requested or no aggregate
	// could be computed for this agent.
	Aggregate *scoring.AggregateResult `json:"aggregate,omitempty"`
}

// AgentFailure marks an agent whose scoring call errored.
type AgentFailure struct {
	AgentID string `json:"agent_id"`
	Error   string `json:"error"`
}

// ClusterSummary compares mean scores across a cluster's successfully scored
// agents. Clusters represented in the target set but without a single
// successful agent are reported with NoData set instead of a zero score.
type ClusterSummary struct {
	Cluster            string  `json:"cluster"`
	Agents             int     `json:"agents"`
	MeanLiking         float64 `json:"mean_liking,omitempty"`
	MeanPurchaseIntent float64 `json:"mean_purchase_intent,omitempty"`
	NoData             bool    `json:"no_data,omitempty"`
}

// Report is the always-produced outcome of a batch evaluation. Failed agents
// are listed explicitly, never silently dropped.
type Report struct {
	RunID     string         `json:"run_id"`
	AdID      string         `json:"ad_id"`
	State     State          `json:"state"`
	Succeeded []AgentResult  `json:"succeeded"`
	Failed    []AgentFailure `json:"failed"`

	// LikingRanking and PurchaseIntentRanking order the succeeded agents by
	// the respective own-score dimension, descending, ties broken by agent
	// id ascending.
	LikingRanking         []string `json:"liking_ranking"`
	PurchaseIntentRanking []string `json:"purchase_intent_ranking"`

	Clusters []ClusterSummary `json:"clusters,omitempty"`
}

// rankBy returns agent ids ordered by the extracted score descending, agent
// id ascending on ties.
func rankBy(results []AgentResult, score func(AgentResult) float64) []string {
	ranked := make([]AgentResult, len(results))
	copy(ranked, results)
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].AgentID < ranked[j].AgentID
	})
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.AgentID
	}
	return out
}
