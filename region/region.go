package region

import (
	"fmt"
	"math"
	"sort"
)

// ageSumTolerance bounds the acceptable drift of an age distribution away
// from 1.0 before the profile is rejected at load time.
const ageSumTolerance = 0.01

// Region is the demographic and preference profile of one prefecture.
// Immutable after load; the registry hands out copies of the slice/map
// fields where mutation would otherwise leak.
type Region struct {
	// ID is the unique prefecture identifier (e.g. "Tokyo").
	ID string `json:"id" yaml:"id"`

	// Population of the prefecture. Optional; zero means unknown.
	Population int64 `json:"population,omitempty" yaml:"population,omitempty"`

	// Area is the broader geographic grouping (e.g. "Kanto", "Kansai").
	Area string `json:"area,omitempty" yaml:"area,omitempty"`

	// Cluster is the categorical grouping used for comparative reporting
	// (e.g. "urban", "rural"). Optional.
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`

	// Preferences characterize the prefecture's consumers
	// (e.g. "price-sensitive", "tech-savvy"). Required.
	Preferences []string `json:"preferences" yaml:"preferences"`

	// AgeDistribution maps age bucket to population fraction. The fractions
	// must sum to 1.0 within tolerance. Required.
	AgeDistribution map[string]float64 `json:"age_distribution" yaml:"age_distribution"`
}

// Validate checks the profile's required fields. Cluster and Population may
// be empty; a missing age distribution or preference list is a hard error so
// that bad data fails at load rather than mid-evaluation.
func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("region profile missing id")
	}
	if len(r.Preferences) == 0 {
		return fmt.Errorf("region %s: missing preferences", r.ID)
	}
	if len(r.AgeDistribution) == 0 {
		return fmt.Errorf("region %s: missing age_distribution", r.ID)
	}
	var sum float64
	for bucket, frac := range r.AgeDistribution {
		if frac < 0 || frac > 1 {
			return fmt.Errorf("region %s: age bucket %s has fraction %v outside [0,1]", r.ID, bucket, frac)
		}
		sum += frac
	}
	if math.Abs(sum-1.0) > ageSumTolerance {
		return fmt.Errorf("region %s: age distribution sums to %.4f, want 1.0", r.ID, sum)
	}
	return nil
}

// AgeBuckets returns the distribution's bucket names in sorted order for
// deterministic rendering.
func (r Region) AgeBuckets() []string {
	buckets := make([]string, 0, len(r.AgeDistribution))
	for b := range r.AgeDistribution {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)
	return buckets
}
