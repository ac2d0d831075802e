package topology

import "fmt"

// Similarity is a sparse (region, neighbor) -> [0,1] table expressing
// cultural/regional closeness. A missing entry means zero influence, which is
// a valid state rather than an error.
type Similarity struct {
	weights map[string]map[string]float64
}

// NewSimilarity validates the weight table and returns a Similarity.
func NewSimilarity(weights map[string]map[string]float64) (*Similarity, error) {
	cloned := make(map[string]map[string]float64, len(weights))
	for from, row := range weights {
		cloned[from] = make(map[string]float64, len(row))
		for to, w := range row {
			if w < 0 || w > 1 {
				return nil, fmt.Errorf("similarity %s -> %s is %v, want [0,1]", from, to, w)
			}
			cloned[from][to] = w
		}
	}
	return &Similarity{weights: cloned}, nil
}

// Weight returns the similarity between a region and a neighbor, or 0 when
// the pair has no entry.
func (s *Similarity) Weight(regionID, neighborID string) float64 {
	return s.weights[regionID][neighborID]
}
