// Package testutil provides testing utilities for upsetgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random membership tables and
// computing exact intersection counts for ground-truth verification.
//
// # Random Membership Generation
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.MembershipRows(1000, 5, 0.4) // 1000 rows, 5 sets, p(member)=0.4
//
// # Exact Counts (Ground Truth)
//
//	counts := testutil.ExactCounts(rows)
package testutil
