// Package store provides the neighbor score store collaborator: given an
// agent and an ad, it returns the scores its topological neighbors have
// already produced for that ad.
package store

import (
	"github.com/prefmesh/prefmesh/scoring"
)

// ScoreStore supplies neighbor scores for aggregation. Implementations must
// return a snapshot that stays consistent for the duration of one
// aggregation call; an empty map means no neighbor data.
type ScoreStore interface {
	NeighborScores(agentID, adID string) (map[string]scoring.Score, error)
}
