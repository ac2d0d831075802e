package persona

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefmesh/prefmesh/region"
	"github.com/prefmesh/prefmesh/scorer"
)

func testProfiles() map[string]region.Region {
	return map[string]region.Region{
		"Tokyo": {
			ID: "Tokyo", Population: 13960000, Area: "Kanto", Cluster: "urban",
			Preferences:     []string{"tech-savvy"},
			AgeDistribution: map[string]float64{"20s": 0.5, "60s+": 0.5},
		},
		"Osaka": {
			ID: "Osaka", Area: "Kansai", Cluster: "urban",
			Preferences:     []string{"price-sensitive"},
			AgeDistribution: map[string]float64{"20s": 0.4, "60s+": 0.6},
		},
		"Hokkaido": {
			ID: "Hokkaido", Area: "Hokkaido", Cluster: "rural",
			Preferences:     []string{"traditional"},
			AgeDistribution: map[string]float64{"20s": 0.3, "60s+": 0.7},
		},
		"Broken": {
			ID: "Broken", Cluster: "rural",
			// No preferences or age distribution: construction must fail.
		},
	}
}

func TestGetOrCreate_CachesInstance(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	first, err := r.GetOrCreate("Tokyo")
	require.NoError(t, err)
	second, err := r.GetOrCreate("Tokyo")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "Tokyo", first.ID())
	assert.Equal(t, 1, r.Stats().Constructions)
}

func TestGetOrCreate_UnknownPersona(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	_, err := r.GetOrCreate("Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestGetOrCreate_FailsFastOnInvalidProfile(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	_, err := r.GetOrCreate("Broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownPersona)
	assert.Equal(t, 0, r.Stats().Constructions)
}

func TestGetOrCreate_ConcurrentFirstAccess(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	const n = 64
	agents := make([]*Agent, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			agent, err := r.GetOrCreate("Osaka")
			assert.NoError(t, err)
			agents[i] = agent
		}(i)
	}
	wg.Wait()

	// Exactly one construction; every caller holds the same instance.
	assert.Equal(t, 1, r.Stats().Constructions)
	for i := 1; i < n; i++ {
		assert.Same(t, agents[0], agents[i])
	}
}

func TestInvalidate_ForcesRecreation(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	first, err := r.GetOrCreate("Tokyo")
	require.NoError(t, err)

	r.Invalidate("Tokyo")

	second, err := r.GetOrCreate("Tokyo")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, r.Stats().Constructions)
}

func TestInvalidateAll(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	_, err := r.GetOrCreate("Tokyo")
	require.NoError(t, err)
	_, err = r.GetOrCreate("Osaka")
	require.NoError(t, err)
	assert.Len(t, r.CachedIDs(), 2)

	r.InvalidateAll()
	assert.Empty(t, r.CachedIDs())
}

func TestListByCluster(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	assert.Equal(t, []string{"Osaka", "Tokyo"}, r.ListByCluster("urban"))
	assert.Equal(t, []string{"Broken", "Hokkaido"}, r.ListByCluster("rural"))
	assert.Empty(t, r.ListByCluster("industrial"))
}

func TestListByArea(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	assert.Equal(t, []string{"Tokyo"}, r.ListByArea("Kanto"))
	assert.Empty(t, r.ListByArea("Kyushu"))
}

func TestProfileSource(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)

	profile, err := r.Profile("Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Kanto", profile.Area)

	_, err = r.Profile("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestAgentScoreHistory(t *testing.T) {
	r := NewRegistry(testProfiles(), nil)
	agent, err := r.GetOrCreate("Tokyo")
	require.NoError(t, err)

	agent.RecordScore(scorer.ScoreRecord{AgentID: "Tokyo", AdID: "ad_001", Liking: 4.0, PurchaseIntent: 3.5, Confidence: 0.9})
	agent.RecordScore(scorer.ScoreRecord{AgentID: "Tokyo", AdID: "ad_002", Liking: 2.5, PurchaseIntent: 2.0, Confidence: 0.8})
	agent.RecordScore(scorer.ScoreRecord{AgentID: "Tokyo", AdID: "ad_001", Liking: 4.5, PurchaseIntent: 4.0, Confidence: 0.95})

	assert.Len(t, agent.History(), 3)

	last, ok := agent.LastScore("ad_001")
	require.True(t, ok)
	assert.Equal(t, 4.5, last.Liking)

	_, ok = agent.LastScore("ad_999")
	assert.False(t, ok)
}
