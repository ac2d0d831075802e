package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/prefmesh/prefmesh/logging"
	"github.com/prefmesh/prefmesh/persona"
	"github.com/prefmesh/prefmesh/scorer"
	"github.com/prefmesh/prefmesh/scoring"
	"github.com/prefmesh/prefmesh/store"
)

// Ad is one advertisement under evaluation.
type Ad struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// Config defines tuning parameters for evaluation runs.
type Config struct {
	// MaxConcurrent limits how many scoring calls run simultaneously.
	// 0 falls back to the default.
	MaxConcurrent int

	// CallTimeout is applied uniformly to every scoring call. A call that
	// times out is recorded as that agent's failure; siblings proceed.
	// 0 disables the timeout.
	CallTimeout time.Duration
}

// DefaultConfig provides conservative defaults for local runs.
var DefaultConfig = Config{
	MaxConcurrent: 8,
	CallTimeout:   30 * time.Second,
}

// ScoreSink is the optional write side of a score store. When the configured
// store implements it, the engine records each successful own score before
// aggregation so agents can influence their siblings within the same run.
type ScoreSink interface {
	Put(adID, agentID string, score scoring.Score)
}

// Options configures an Engine instance.
type Options struct {
	// Config contains operational parameters for runs.
	Config Config

	// Store supplies neighbor scores for aggregation. When nil, runs skip
	// the aggregation phase entirely.
	Store store.ScoreStore

	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

// Engine drives the per-ad, per-agent evaluation sequence. Agents are
// siblings: a failure or timeout in one scoring call never cancels the
// others. The registry cache is the only mutable state shared between
// concurrent calls.
type Engine struct {
	registry   *persona.Registry
	scorer     scorer.Scorer
	aggregator *scoring.Aggregator
	scoreStore store.ScoreStore
	config     Config
	logger     logging.Logger
}

// New creates an Engine over the given registry, scoring collaborator and
// aggregator.
func New(registry *persona.Registry, sc scorer.Scorer, aggregator *scoring.Aggregator, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.MaxConcurrent <= 0 {
		opts.Config.MaxConcurrent = DefaultConfig.MaxConcurrent
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Engine{
		registry:   registry,
		scorer:     sc,
		aggregator: aggregator,
		scoreStore: opts.Store,
		config:     opts.Config,
		logger:     opts.Logger,
	}
}

// Evaluate runs a batch evaluation of the ad across the target agents and
// returns a report distinguishing succeeded from failed agents. The report
// is produced even when every agent fails; only a cancelled parent context
// aborts the run.
func (e *Engine) Evaluate(ctx context.Context, ad Ad, targetIDs []string) (*Report, error) {
	if ad.ID == "" {
		return nil, fmt.Errorf("ad id is required")
	}
	if len(targetIDs) == 0 {
		return nil, fmt.Errorf("no target agents")
	}

	runID := uuid.NewString()
	report := &Report{RunID: runID, AdID: ad.ID, State: StatePending}
	e.logger.Info("evaluation run started", "run_id", runID, "ad_id", ad.ID, "targets", len(targetIDs))

	report.State = StateScoring
	results, failures := e.scoreAll(ctx, ad, targetIDs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.scoreStore != nil {
		report.State = StateAggregating
		e.recordScores(ad, results)
		e.aggregateAll(ad, results)
	}

	report.Succeeded = results
	report.Failed = failures
	report.LikingRanking = rankBy(results, func(r AgentResult) float64 { return r.Record.Liking })
	report.PurchaseIntentRanking = rankBy(results, func(r AgentResult) float64 { return r.Record.PurchaseIntent })
	report.Clusters = e.compareClusters(targetIDs, results)

	if len(failures) > 0 {
		report.State = StatePartialFailure
	} else {
		report.State = StateComplete
	}
	e.logger.Info("evaluation run finished", "run_id", runID, "state", string(report.State), "succeeded", len(results), "failed", len(failures))
	return report, nil
}

// scoreAll fans scoring calls out across the targets, bounded by the
// configured concurrency limit, and collects results deterministically
// sorted by agent id.
func (e *Engine) scoreAll(ctx context.Context, ad Ad, targetIDs []string) ([]AgentResult, []AgentFailure) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		results  []AgentResult
		failures []AgentFailure
	)
	sem := semaphore.NewWeighted(int64(e.config.MaxConcurrent))

	for _, id := range targetIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Parent context cancelled; remaining targets are recorded as
			// failed so the report never silently drops them.
			mu.Lock()
			failures = append(failures, AgentFailure{AgentID: id, Error: err.Error()})
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func(agentID string) {
			defer wg.Done()
			defer sem.Release(1)

			rec, err := e.scoreOne(ctx, ad, agentID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, AgentFailure{AgentID: agentID, Error: err.Error()})
				return
			}
			results = append(results, AgentResult{AgentID: agentID, Record: rec})
		}(id)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].AgentID < results[j].AgentID })
	sort.Slice(failures, func(i, j int) bool { return failures[i].AgentID < failures[j].AgentID })
	return results, failures
}

// scoreOne obtains one agent's own score with the uniform per-call timeout.
func (e *Engine) scoreOne(ctx context.Context, ad Ad, agentID string) (scorer.ScoreRecord, error) {
	agent, err := e.registry.GetOrCreate(agentID)
	if err != nil {
		return scorer.ScoreRecord{}, err
	}

	callCtx := ctx
	if e.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.config.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	rec, err := e.scorer.Score(callCtx, agentID, ad.ID, ad.Content)
	if err != nil {
		e.logger.Warn("agent scoring failed", "agent_id", agentID, "ad_id", ad.ID, "duration", time.Since(start), "error", err)
		return scorer.ScoreRecord{}, fmt.Errorf("agent %s scoring: %w", agentID, err)
	}
	if err := rec.Validate(); err != nil {
		return scorer.ScoreRecord{}, fmt.Errorf("agent %s returned invalid record: %w", agentID, err)
	}

	agent.RecordScore(rec)
	e.logger.Debug("agent scored", "agent_id", agentID, "ad_id", ad.ID, "liking", rec.Liking, "purchase_intent", rec.PurchaseIntent, "duration", time.Since(start))
	return rec, nil
}

// recordScores writes this run's own scores into the store when it accepts
// writes, making them visible as neighbor data for the aggregation phase.
func (e *Engine) recordScores(ad Ad, results []AgentResult) {
	sink, ok := e.scoreStore.(ScoreSink)
	if !ok {
		return
	}
	for _, r := range results {
		sink.Put(ad.ID, r.AgentID, scoring.NewScore(r.Record.Liking, r.Record.PurchaseIntent))
	}
}

// aggregateAll fetches neighbor scores for each succeeded agent and attaches
// the aggregate. Aggregation problems keep the agent's own score intact; the
// aggregate is simply absent for that agent.
func (e *Engine) aggregateAll(ad Ad, results []AgentResult) {
	for i := range results {
		r := &results[i]
		neighborScores, err := e.scoreStore.NeighborScores(r.AgentID, ad.ID)
		if err != nil {
			e.logger.Warn("neighbor score lookup failed", "agent_id", r.AgentID, "ad_id", ad.ID, "error", err)
			continue
		}
		own := scoring.NewScore(r.Record.Liking, r.Record.PurchaseIntent)
		agg, err := e.aggregator.Aggregate(r.AgentID, own, neighborScores)
		if err != nil {
			e.logger.Warn("aggregation failed", "agent_id", r.AgentID, "ad_id", ad.ID, "error", err)
			continue
		}
		r.Aggregate = agg
	}
}

// compareClusters groups the targets by cluster label and computes the mean
// own scores over each cluster's successful agents. A cluster present in the
// target set but without successes is flagged NoData rather than scored zero.
func (e *Engine) compareClusters(targetIDs []string, results []AgentResult) []ClusterSummary {
	clusters := make(map[string]bool)
	for _, id := range targetIDs {
		profile, err := e.registry.Profile(id)
		if err != nil {
			continue
		}
		clusters[profile.Cluster] = true
	}

	type acc struct {
		n                     int
		liking, purchaseIntent float64
	}
	sums := make(map[string]*acc)
	for _, r := range results {
		profile, err := e.registry.Profile(r.AgentID)
		if err != nil {
			continue
		}
		a := sums[profile.Cluster]
		if a == nil {
			a = &acc{}
			sums[profile.Cluster] = a
		}
		a.n++
		a.liking += r.Record.Liking
		a.purchaseIntent += r.Record.PurchaseIntent
	}

	labels := make([]string, 0, len(clusters))
	for c := range clusters {
		labels = append(labels, c)
	}
	sort.Strings(labels)

	out := make([]ClusterSummary, 0, len(labels))
	for _, c := range labels {
		a := sums[c]
		if a == nil || a.n == 0 {
			out = append(out, ClusterSummary{Cluster: c, NoData: true})
			continue
		}
		out = append(out, ClusterSummary{
			Cluster:            c,
			Agents:             a.n,
			MeanLiking:         a.liking / float64(a.n),
			MeanPurchaseIntent: a.purchaseIntent / float64(a.n),
		})
	}
	return out
}
