package topology

import (
	"errors"
	"fmt"
	"slices"

	"github.com/prefmesh/prefmesh/logging"
)

// ErrUnknownRegion is returned when a region id is absent from the graph.
var ErrUnknownRegion = errors.New("unknown region")

// Provider exposes neighbor lookups over a static adjacency graph.
//
// The graph is stored per-node; given region A lists B as a neighbor, B is
// not required to list A. The canonical dataset should be symmetric, so
// asymmetric entries are logged as a data-quality warning at construction
// rather than rejected.
type Provider struct {
	adjacency map[string][]string
}

// NewProvider validates the adjacency map and returns a Provider.
// Self-loops and neighbor ids that are not themselves nodes of the graph are
// hard errors; asymmetry is warned about via the logger.
func NewProvider(adjacency map[string][]string, logger logging.Logger) (*Provider, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	nodes := make(map[string][]string, len(adjacency))
	for id, neighbors := range adjacency {
		for _, n := range neighbors {
			if n == id {
				return nil, fmt.Errorf("region %s lists itself as a neighbor", id)
			}
			if _, ok := adjacency[n]; !ok {
				return nil, fmt.Errorf("region %s lists dangling neighbor %s", id, n)
			}
		}
		nodes[id] = slices.Clone(neighbors)
	}

	for id, neighbors := range nodes {
		for _, n := range neighbors {
			if !slices.Contains(nodes[n], id) {
				logger.Warn("asymmetric adjacency entry", "region", id, "neighbor", n)
			}
		}
	}

	return &Provider{adjacency: nodes}, nil
}

// Neighbors returns the ordered neighbor list for a region. The returned
// slice is a copy; callers may retain or mutate it freely.
func (p *Provider) Neighbors(regionID string) ([]string, error) {
	neighbors, ok := p.adjacency[regionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, regionID)
	}
	return slices.Clone(neighbors), nil
}

// Contains reports whether the graph has a node for the region.
func (p *Provider) Contains(regionID string) bool {
	_, ok := p.adjacency[regionID]
	return ok
}

// Regions returns all node ids, sorted for determinism.
func (p *Provider) Regions() []string {
	out := make([]string, 0, len(p.adjacency))
	for id := range p.adjacency {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
