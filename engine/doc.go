// Package engine orchestrates advertisement evaluation runs. For each run it
// fans scoring calls out across the target agents, tolerates per-agent
// failures without aborting siblings, optionally blends each own score with
// neighbor scores via the aggregator, and produces a deterministic report
// with rankings and per-cluster comparison.
package engine
