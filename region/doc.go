// Package region defines the canonical prefecture profile type and the
// dataset (profiles, adjacency, similarity) loaded at startup. Profiles are
// validated at load time and treated as immutable afterwards. The built-in
// dataset is plain configuration: callers can swap in their own from a JSON
// or YAML file without touching any code.
package region
