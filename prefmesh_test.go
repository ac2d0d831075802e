package prefmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefmesh/prefmesh/engine"
	"github.com/prefmesh/prefmesh/region"
	"github.com/prefmesh/prefmesh/scorer"
)

func TestNew_Defaults(t *testing.T) {
	mesh, err := New()
	require.NoError(t, err)

	// The built-in dataset backs every service.
	assert.True(t, mesh.Topology().Contains("Tokyo"))
	assert.NotEmpty(t, mesh.Registry().IDs())
}

func TestNew_RejectsInvalidDataset(t *testing.T) {
	_, err := New(func(o *Options) {
		o.Dataset = &region.Dataset{
			Regions: []region.Region{{ID: "Tokyo"}}, // missing preferences etc.
		}
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dataset")
}

func TestEvaluate_EndToEnd(t *testing.T) {
	mock := scorer.NewMockScorer()
	mock.AddRecord(scorer.ScoreRecord{AgentID: "Tokyo", AdID: "ad_001", Liking: 4.0, PurchaseIntent: 3.5, Confidence: 0.9})
	mock.AddRecord(scorer.ScoreRecord{AgentID: "Osaka", AdID: "ad_001", Liking: 3.0, PurchaseIntent: 2.0, Confidence: 0.8})

	mesh, err := New(func(o *Options) {
		o.Scorer = mock
	})
	require.NoError(t, err)

	report, err := mesh.Evaluate(t.Context(), engine.Ad{ID: "ad_001", Content: "content"}, []string{"Tokyo", "Osaka"})
	require.NoError(t, err)

	assert.Equal(t, engine.StateComplete, report.State)
	require.Len(t, report.Succeeded, 2)

	// Aggregation runs by default: Tokyo's aggregate blends Osaka's score at
	// similarity 0.7 capped to 0.35.
	for _, r := range report.Succeeded {
		require.NotNil(t, r.Aggregate, "agent %s", r.AgentID)
		if r.AgentID == "Tokyo" {
			assert.InDelta(t, 3.7407, r.Aggregate.AggregateLiking, 1e-4)
		}
	}
	assert.Equal(t, []string{"Tokyo", "Osaka"}, report.LikingRanking)
}

func TestEvaluate_DisableAggregation(t *testing.T) {
	mesh, err := New(func(o *Options) {
		o.DisableAggregation = true
	})
	require.NoError(t, err)

	report, err := mesh.Evaluate(t.Context(), engine.Ad{ID: "ad_001", Content: "content"}, []string{"Tokyo", "Osaka"})
	require.NoError(t, err)
	for _, r := range report.Succeeded {
		assert.Nil(t, r.Aggregate)
	}
}

func TestEvaluateAll(t *testing.T) {
	mesh, err := New()
	require.NoError(t, err)

	report, err := mesh.EvaluateAll(t.Context(), engine.Ad{ID: "ad_001", Content: "content"})
	require.NoError(t, err)

	assert.Equal(t, engine.StateComplete, report.State)
	assert.Len(t, report.Succeeded, len(mesh.Registry().IDs()))
}
