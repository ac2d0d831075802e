package persona

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/prefmesh/prefmesh/logging"
	"github.com/prefmesh/prefmesh/region"
)

// ErrUnknownPersona is returned when a region id has no profile data.
var ErrUnknownPersona = errors.New("unknown persona")

// Registry lazily constructs and caches one Agent per region id. It is the
// only mutable shared resource in the system: lookups after construction are
// safe for concurrent use, and creation is serialized per key so concurrent
// first access yields exactly one instance.
type Registry struct {
	profiles map[string]region.Region
	logger   logging.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry

	constructions int // total successful agent constructions, for Stats
}

// registryEntry serializes construction per key: the creating goroutine runs
// the once body while late arrivals wait on it.
type registryEntry struct {
	once  sync.Once
	agent *Agent
	err   error
}

// NewRegistry builds a registry over validated profile data.
func NewRegistry(profiles map[string]region.Region, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	cloned := make(map[string]region.Region, len(profiles))
	for id, p := range profiles {
		cloned[id] = p
	}
	return &Registry{
		profiles: cloned,
		logger:   logger,
		entries:  make(map[string]*registryEntry),
	}
}

// GetOrCreate returns the cached agent for the region, constructing it on
// first access. Construction validates the profile and fails fast on missing
// required fields rather than defaulting silently.
func (r *Registry) GetOrCreate(regionID string) (*Agent, error) {
	r.mu.Lock()
	entry, ok := r.entries[regionID]
	if !ok {
		entry = &registryEntry{}
		r.entries[regionID] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		profile, ok := r.profiles[regionID]
		if !ok {
			entry.err = fmt.Errorf("%w: %s", ErrUnknownPersona, regionID)
			return
		}
		if err := profile.Validate(); err != nil {
			entry.err = fmt.Errorf("construct agent %s: %w", regionID, err)
			return
		}
		entry.agent = newAgent(profile)
		r.mu.Lock()
		r.constructions++
		r.mu.Unlock()
		r.logger.Info("constructed agent", "region", regionID)
	})

	if entry.err != nil {
		// Drop the failed entry so a later fix to the profile data is
		// picked up on the next access.
		r.mu.Lock()
		if r.entries[regionID] == entry {
			delete(r.entries, regionID)
		}
		r.mu.Unlock()
		return nil, entry.err
	}
	return entry.agent, nil
}

// Profile implements scorer.ProfileSource.
func (r *Registry) Profile(regionID string) (region.Region, error) {
	profile, ok := r.profiles[regionID]
	if !ok {
		return region.Region{}, fmt.Errorf("%w: %s", ErrUnknownPersona, regionID)
	}
	return profile, nil
}

// Invalidate removes the cached agent for a region, forcing re-creation on
// the next access. An in-flight GetOrCreate for the same key completes on
// the old entry; subsequent lookups see a fresh one.
func (r *Registry) Invalidate(regionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, regionID)
}

// InvalidateAll clears the whole agent cache.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*registryEntry)
	r.logger.Info("cleared agent cache")
}

// ListByCluster returns the ids of all profiles in the cluster, sorted.
func (r *Registry) ListByCluster(cluster string) []string {
	var out []string
	for id, p := range r.profiles {
		if p.Cluster == cluster {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// ListByArea returns the ids of all profiles in the geographic area, sorted.
func (r *Registry) ListByArea(area string) []string {
	var out []string
	for id, p := range r.profiles {
		if p.Area == area {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// IDs returns all known region ids, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CachedIDs returns the ids of currently cached agents, sorted.
func (r *Registry) CachedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for id, e := range r.entries {
		if e.agent != nil {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Stats describes the registry state for introspection.
type Stats struct {
	KnownProfiles int `json:"known_profiles"`
	CachedAgents  int `json:"cached_agents"`
	Constructions int `json:"constructions"`
}

// Stats returns a snapshot of the registry state.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	cached := 0
	for _, e := range r.entries {
		if e.agent != nil {
			cached++
		}
	}
	return Stats{KnownProfiles: len(r.profiles), CachedAgents: cached, Constructions: r.constructions}
}
