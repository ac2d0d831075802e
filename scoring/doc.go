// Package scoring implements the neighbor-weighted aggregate scoring
// algorithm. An agent's own score always carries weight 1.0; each neighbor
// present in both the topology and the supplied score set contributes with
// weight similarity * 0.5, capping any single neighbor at half the agent's
// own influence. The final aggregate is the weighted mean, clamped to [0,5].
package scoring
