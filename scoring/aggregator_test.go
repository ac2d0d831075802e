package scoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefmesh/prefmesh/topology"
)

type captureLogger struct {
	mu    sync.Mutex
	warns []string
}

func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Warn(msg string, _ ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warns = append(c.warns, msg)
}

func testAggregator(t *testing.T) *Aggregator {
	t.Helper()
	topo, err := topology.NewProvider(map[string][]string{
		"Tokyo":    {"Osaka", "Kyoto", "Hokkaido"},
		"Osaka":    {"Tokyo", "Kyoto"},
		"Kyoto":    {"Tokyo", "Osaka"},
		"Hokkaido": {"Tokyo"},
	}, nil)
	require.NoError(t, err)
	sim, err := topology.NewSimilarity(map[string]map[string]float64{
		"Tokyo":    {"Osaka": 0.7, "Kyoto": 0.6},
		"Osaka":    {"Tokyo": 0.7, "Kyoto": 0.8},
		"Kyoto":    {"Tokyo": 0.6, "Osaka": 0.8},
		"Hokkaido": {"Tokyo": 0.3},
	})
	require.NoError(t, err)
	return NewAggregator(topo, sim, nil)
}

func TestAggregate_EmptyNeighborsIsIdentity(t *testing.T) {
	agg := testAggregator(t)

	result, err := agg.Aggregate("Tokyo", NewScore(4.0, 3.5), nil)
	require.NoError(t, err)

	assert.Equal(t, 4.0, result.AggregateLiking)
	assert.Equal(t, 3.5, result.AggregatePurchaseIntent)
	assert.Empty(t, result.NeighborInfluence)
	assert.Contains(t, result.Explanation, "no neighbor data used")
}

func TestAggregate_TokyoOsakaScenario(t *testing.T) {
	agg := testAggregator(t)

	result, err := agg.Aggregate("Tokyo", NewScore(4.0, 3.5), map[string]Score{
		"Osaka": NewScore(3.0, 2.0),
	})
	require.NoError(t, err)

	// similarity 0.7 * 0.5 = 0.35 influence weight
	require.Contains(t, result.NeighborInfluence, "Osaka")
	assert.InDelta(t, 0.35, result.NeighborInfluence["Osaka"], 1e-9)
	assert.InDelta(t, (4.0+3.0*0.35)/1.35, result.AggregateLiking, 1e-9)
	assert.InDelta(t, (3.5+2.0*0.35)/1.35, result.AggregatePurchaseIntent, 1e-9)
	assert.InDelta(t, 3.7407, result.AggregateLiking, 1e-4)
	assert.InDelta(t, 3.0370, result.AggregatePurchaseIntent, 1e-4)
	assert.Contains(t, result.Explanation, "1 neighbors")
}

func TestAggregate_Boundedness(t *testing.T) {
	agg := testAggregator(t)

	own := NewScore(4.0, 4.0)
	neighbors := map[string]Score{
		"Osaka": NewScore(1.0, 5.0),
		"Kyoto": NewScore(2.0, 4.5),
	}
	result, err := agg.Aggregate("Tokyo", own, neighbors)
	require.NoError(t, err)

	// The aggregate stays between the extremes of own and neighbor scores.
	assert.GreaterOrEqual(t, result.AggregateLiking, 1.0)
	assert.LessOrEqual(t, result.AggregateLiking, 4.0)
	assert.GreaterOrEqual(t, result.AggregatePurchaseIntent, 4.0)
	assert.LessOrEqual(t, result.AggregatePurchaseIntent, 5.0)

	// Each influence weight is capped at half the own weight.
	for neighbor, w := range result.NeighborInfluence {
		assert.LessOrEqualf(t, w, 0.5, "neighbor %s weight", neighbor)
		assert.Greaterf(t, w, 0.0, "neighbor %s weight", neighbor)
	}
}

func TestAggregate_ClampsOutOfRangeInput(t *testing.T) {
	agg := testAggregator(t)

	result, err := agg.Aggregate("Tokyo", NewScore(9.0, -3.0), map[string]Score{
		"Osaka": NewScore(8.0, -2.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 5.0, result.AggregateLiking)
	assert.Equal(t, 0.0, result.AggregatePurchaseIntent)
}

func TestAggregate_MissingOwnScore(t *testing.T) {
	agg := testAggregator(t)

	liking := 4.0
	_, err := agg.Aggregate("Tokyo", Score{Liking: &liking}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = agg.Aggregate("Tokyo", Score{}, nil)
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestAggregate_UnknownAgent(t *testing.T) {
	agg := testAggregator(t)

	_, err := agg.Aggregate("Atlantis", NewScore(3.0, 3.0), nil)
	assert.ErrorIs(t, err, topology.ErrUnknownRegion)
}

func TestAggregate_SkipsMalformedNeighbor(t *testing.T) {
	topoLogger := &captureLogger{}
	topo, err := topology.NewProvider(map[string][]string{
		"Tokyo": {"Osaka", "Kyoto"},
		"Osaka": {"Tokyo"},
		"Kyoto": {"Tokyo"},
	}, nil)
	require.NoError(t, err)
	sim, err := topology.NewSimilarity(map[string]map[string]float64{
		"Tokyo": {"Osaka": 0.7, "Kyoto": 0.6},
	})
	require.NoError(t, err)
	agg := NewAggregator(topo, sim, topoLogger)

	liking := 2.0
	result, err := agg.Aggregate("Tokyo", NewScore(4.0, 3.5), map[string]Score{
		"Osaka": NewScore(3.0, 2.0),
		"Kyoto": {Liking: &liking}, // missing purchase_intent
	})
	require.NoError(t, err)

	// Kyoto is skipped with a warning; Osaka still contributes.
	assert.NotContains(t, result.NeighborInfluence, "Kyoto")
	assert.Contains(t, result.NeighborInfluence, "Osaka")
	require.Len(t, topoLogger.warns, 1)
	assert.Contains(t, topoLogger.warns[0], "malformed")
}

func TestAggregate_IgnoresNonTopologyNeighbor(t *testing.T) {
	agg := testAggregator(t)

	// Hokkaido only neighbors Tokyo; a score from Osaka must not count.
	result, err := agg.Aggregate("Hokkaido", NewScore(3.0, 3.0), map[string]Score{
		"Osaka": NewScore(5.0, 5.0),
	})
	require.NoError(t, err)

	assert.Empty(t, result.NeighborInfluence)
	assert.Equal(t, 3.0, result.AggregateLiking)
}

func TestAggregate_ZeroSimilarityMeansNoInfluence(t *testing.T) {
	topo, err := topology.NewProvider(map[string][]string{
		"Tokyo": {"Osaka"},
		"Osaka": {"Tokyo"},
	}, nil)
	require.NoError(t, err)
	sim, err := topology.NewSimilarity(nil)
	require.NoError(t, err)
	agg := NewAggregator(topo, sim, nil)

	result, err := agg.Aggregate("Tokyo", NewScore(4.0, 3.5), map[string]Score{
		"Osaka": NewScore(1.0, 1.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, result.AggregateLiking)
	assert.Equal(t, 3.5, result.AggregatePurchaseIntent)
	assert.Empty(t, result.NeighborInfluence)
}
