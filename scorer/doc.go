// Package scorer defines the boundary to the external, LLM-backed scoring
// collaborator. The core treats a Scorer as a black box that turns
// (agent, ad) into a ScoreRecord or an error. Retry/backoff is an explicit
// policy applied at this boundary via WithRetry, never inside aggregation.
// Provider-backed implementations live in the openai and anthropic
// subpackages; MockScorer serves tests and examples.
package scorer
