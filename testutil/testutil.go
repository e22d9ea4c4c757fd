package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/upsetgo/frame"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// MembershipRows generates random membership rows. Each of the numSets
// entries in a row is true with probability p.
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) MembershipRows(numRows, numSets int, p float64) [][]bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]bool, numRows)
	for i := range rows {
		row := make([]bool, numSets)
		for j := range row {
			row[j] = r.rand.Float64() < p
		}
		rows[i] = row
	}

	return rows
}

// FillGaussian fills dst with values from a standard normal distribution.
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// SetNames returns numSets generated column names ("set1", "set2", ...).
func SetNames(numSets int) []string {
	names := make([]string, numSets)
	for i := range names {
		names[i] = fmt.Sprintf("set%d", i+1)
	}

	return names
}

// MembershipTable builds a frame.Table from membership rows, one boolean
// column per set named via SetNames.
func MembershipTable(rows [][]bool) *frame.Table {
	numSets := 0
	if len(rows) > 0 {
		numSets = len(rows[0])
	}

	b := frame.NewBuilder()
	for j, name := range SetNames(numSets) {
		col := make([]bool, len(rows))
		for i, row := range rows {
			col[i] = row[j]
		}
		b = b.Bools(name, col)
	}

	return b.MustBuild()
}

// ExactCounts computes ground-truth intersection counts by brute force.
// Keys are membership patterns encoded as '0'/'1' strings in set order.
func ExactCounts(rows [][]bool) map[string]int {
	counts := make(map[string]int)
	key := make([]byte, 0, 16)

	for _, row := range rows {
		key = key[:0]
		for _, member := range row {
			if member {
				key = append(key, '1')
			} else {
				key = append(key, '0')
			}
		}
		counts[string(key)]++
	}

	return counts
}

// PatternKey encodes a membership slice the same way ExactCounts keys it.
func PatternKey(membership []bool) string {
	key := make([]byte, len(membership))
	for i, member := range membership {
		if member {
			key[i] = '1'
		} else {
			key[i] = '0'
		}
	}

	return string(key)
}
