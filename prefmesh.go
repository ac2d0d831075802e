// Package prefmesh provides a high-level façade over the evaluation engine
// and its services (topology, similarity, persona registry, score store,
// logging) enabling rapid construction of regional ad-evaluation runs. Most
// applications interact with this package by:
//  1. Creating a Mesh via New() (optionally overriding the dataset, scorer or stores)
//  2. Evaluating ads across target agents with Evaluate()
//  3. Inspecting the returned report (rankings, clusters, failures)
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing: the built-in dataset, an in-memory score store, a mock scorer and
// a NoOp logger.
package prefmesh

import (
	"context"
	"fmt"

	"github.com/prefmesh/prefmesh/engine"
	"github.com/prefmesh/prefmesh/logging"
	"github.com/prefmesh/prefmesh/persona"
	"github.com/prefmesh/prefmesh/region"
	"github.com/prefmesh/prefmesh/scorer"
	"github.com/prefmesh/prefmesh/scoring"
	"github.com/prefmesh/prefmesh/store"
	"github.com/prefmesh/prefmesh/topology"
)

// Options configures the Mesh instance.
type Options struct {
	// Dataset supplies profiles, adjacency and similarity. Defaults to the
	// built-in dataset.
	Dataset *region.Dataset

	// Scorer is the external scoring collaborator. Defaults to a MockScorer.
	Scorer scorer.Scorer

	// Store supplies neighbor scores. Defaults to an in-memory store over
	// the dataset's topology; set to nil explicitly via DisableAggregation
	// to skip the aggregation phase.
	Store store.ScoreStore

	// DisableAggregation skips the aggregation phase even when a store is
	// available.
	DisableAggregation bool

	// EngineConfig tunes concurrency and the per-call timeout.
	EngineConfig engine.Config

	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

// Mesh is the high-level façade aggregating the engine and its services.
type Mesh struct {
	registry   *persona.Registry
	topo       *topology.Provider
	sim        *topology.Similarity
	aggregator *scoring.Aggregator
	engine     *engine.Engine
}

// New creates a Mesh with optional overrides. Any unset service is
// initialized with an in-memory implementation over the built-in dataset.
func New(optFns ...func(o *Options)) (*Mesh, error) {
	opts := Options{
		Dataset:      region.Default(),
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if err := opts.Dataset.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	topo, err := topology.NewProvider(opts.Dataset.Adjacency, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("build topology: %w", err)
	}
	sim, err := topology.NewSimilarity(opts.Dataset.Similarity)
	if err != nil {
		return nil, fmt.Errorf("build similarity: %w", err)
	}

	registry := persona.NewRegistry(opts.Dataset.Profiles(), opts.Logger)
	aggregator := scoring.NewAggregator(topo, sim, opts.Logger)

	if opts.Scorer == nil {
		opts.Scorer = scorer.NewMockScorer()
	}
	if opts.Store == nil && !opts.DisableAggregation {
		opts.Store = store.NewInMemoryStore(topo)
	}

	eng := engine.New(registry, opts.Scorer, aggregator, func(o *engine.Options) {
		o.Config = opts.EngineConfig
		if !opts.DisableAggregation {
			o.Store = opts.Store
		}
		o.Logger = opts.Logger
	})

	return &Mesh{
		registry:   registry,
		topo:       topo,
		sim:        sim,
		aggregator: aggregator,
		engine:     eng,
	}, nil
}

// Evaluate runs a batch evaluation of the ad across the target agents.
func (m *Mesh) Evaluate(ctx context.Context, ad engine.Ad, targetIDs []string) (*engine.Report, error) {
	return m.engine.Evaluate(ctx, ad, targetIDs)
}

// EvaluateAll runs a batch evaluation across every known agent.
func (m *Mesh) EvaluateAll(ctx context.Context, ad engine.Ad) (*engine.Report, error) {
	return m.engine.Evaluate(ctx, ad, m.registry.IDs())
}

// Registry returns the persona registry for direct cache management.
func (m *Mesh) Registry() *persona.Registry { return m.registry }

// Topology returns the adjacency provider.
func (m *Mesh) Topology() *topology.Provider { return m.topo }

// Aggregator returns the scoring aggregator.
func (m *Mesh) Aggregator() *scoring.Aggregator { return m.aggregator }
