// Package persona manages agent instances, one per prefecture. The Registry
// lazily constructs agents from profile data and caches them for its
// lifetime, guaranteeing at most one instance per region id even under
// concurrent first access. Invalidation forces re-creation on the next
// lookup and is linearizable per key with respect to in-flight creation.
package persona
