// Package topology provides the static adjacency graph between prefectures
// and the pairwise similarity table used to weight neighbor influence. Both
// are read-only after construction and safe for concurrent use.
package topology
