package topology

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger records warn messages for assertions.
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

func TestProviderNeighbors(t *testing.T) {
	p, err := NewProvider(map[string][]string{
		"Tokyo": {"Osaka", "Kyoto"},
		"Osaka": {"Tokyo"},
		"Kyoto": {"Tokyo"},
	}, nil)
	require.NoError(t, err)

	neighbors, err := p.Neighbors("Tokyo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Osaka", "Kyoto"}, neighbors)
}

func TestProviderNeighbors_ReturnsCopy(t *testing.T) {
	p, err := NewProvider(map[string][]string{
		"Tokyo": {"Osaka"},
		"Osaka": {"Tokyo"},
	}, nil)
	require.NoError(t, err)

	first, err := p.Neighbors("Tokyo")
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := p.Neighbors("Tokyo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Osaka"}, second)
}

func TestProviderNeighbors_UnknownRegion(t *testing.T) {
	p, err := NewProvider(map[string][]string{"Tokyo": {}}, nil)
	require.NoError(t, err)

	_, err = p.Neighbors("Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRegion)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestNewProvider_RejectsSelfLoop(t *testing.T) {
	_, err := NewProvider(map[string][]string{"Tokyo": {"Tokyo"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")
}

func TestNewProvider_RejectsDanglingNeighbor(t *testing.T) {
	_, err := NewProvider(map[string][]string{"Tokyo": {"Nowhere"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangling")
}

func TestNewProvider_WarnsOnAsymmetry(t *testing.T) {
	logger := &captureLogger{}
	_, err := NewProvider(map[string][]string{
		"Tokyo": {"Osaka"},
		"Osaka": {},
	}, logger)
	require.NoError(t, err)
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], "asymmetric")
}

func TestSimilarityWeight(t *testing.T) {
	sim, err := NewSimilarity(map[string]map[string]float64{
		"Tokyo": {"Osaka": 0.7},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.7, sim.Weight("Tokyo", "Osaka"), 1e-9)
	// Absent pairs mean zero influence, not an error.
	assert.Zero(t, sim.Weight("Tokyo", "Kyoto"))
	assert.Zero(t, sim.Weight("Osaka", "Tokyo"))
}

func TestNewSimilarity_RejectsOutOfRange(t *testing.T) {
	_, err := NewSimilarity(map[string]map[string]float64{"Tokyo": {"Osaka": -0.1}})
	assert.Error(t, err)

	_, err = NewSimilarity(map[string]map[string]float64{"Tokyo": {"Osaka": 1.1}})
	assert.Error(t, err)
}

func TestProviderRegions(t *testing.T) {
	p, err := NewProvider(map[string][]string{
		"Osaka": {},
		"Tokyo": {},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Osaka", "Tokyo"}, p.Regions())
	assert.True(t, p.Contains("Tokyo"))
	assert.False(t, p.Contains("Kyoto"))
}
