// bloom.go: lock-free Bloom filter membership set
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lethe

import (
	"math"
	"math/bits"
	"sync/atomic"
	"unsafe"
)

// BloomFilter is a fixed-size probabilistic set supporting insertion and
// membership test with no false negatives and a bounded false-positive rate.
// It is intended as a cheap pre-filter ahead of an expensive authoritative
// check.
//
// The filter has no removal operation: bits are never cleared once set.
// All methods are safe for concurrent use; bit updates use atomic word-level
// OR operations, so concurrent Add and MightContain never lose writes.
type BloomFilter struct {
	// words stores the bit array packed into uint64 values,
	// accessed only through atomic operations
	words []uint64

	// mBits is the total number of bits (m)
	mBits uint64

	// hashCount is the number of derived hash functions (k)
	hashCount int

	// items counts insertions that set at least one new bit.
	// Used for false-positive estimation, not correctness.
	items atomic.Uint64

	metricsCollector MetricsCollector
}

// NewBloomFilter creates a Bloom filter from the given configuration.
// Returns a configuration error if the sizing parameters are invalid;
// see BloomConfig.Validate for the exact rules.
func NewBloomFilter(config BloomConfig) (*BloomFilter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &BloomFilter{
		words:            make([]uint64, (uint64(config.Size)+63)/64),
		mBits:            uint64(config.Size),
		hashCount:        config.HashCount,
		metricsCollector: config.MetricsCollector,
	}, nil
}

// Add inserts item into the filter. Always succeeds; adding the same item
// again leaves the bit array unchanged.
func (f *BloomFilter) Add(item []byte) {
	h1, h2 := bloomHash(item)

	changed := false
	for i := 0; i < f.hashCount; i++ {
		j := (h1 + uint64(i)*h2) % f.mBits
		mask := uint64(1) << (j & 63)
		if atomic.OrUint64(&f.words[j>>6], mask)&mask == 0 {
			changed = true
		}
	}
	if changed {
		f.items.Add(1)
	}
}

// AddString inserts a string item without copying it.
func (f *BloomFilter) AddString(item string) {
	f.Add(stringBytes(item))
}

// MightContain reports whether item may have been added.
// A false result is authoritative: the item was definitely never added.
// A true result may be a false positive, at a rate governed by the filter
// parameters and the number of distinct items inserted.
func (f *BloomFilter) MightContain(item []byte) bool {
	h1, h2 := bloomHash(item)

	for i := 0; i < f.hashCount; i++ {
		j := (h1 + uint64(i)*h2) % f.mBits
		if atomic.LoadUint64(&f.words[j>>6])&(1<<(j&63)) == 0 {
			f.metricsCollector.RecordBloomCheck(false)
			return false
		}
	}
	f.metricsCollector.RecordBloomCheck(true)
	return true
}

// MightContainString is MightContain for a string item, without copying it.
func (f *BloomFilter) MightContainString(item string) bool {
	return f.MightContain(stringBytes(item))
}

// Size returns the number of bits in the filter (m).
func (f *BloomFilter) Size() int {
	return int(f.mBits)
}

// HashCount returns the number of derived hash functions (k).
func (f *BloomFilter) HashCount() int {
	return f.hashCount
}

// ApproxItems returns the approximate number of distinct items added.
// An Add that set no new bit (a duplicate, or a full collision) is not
// counted, so the value can undercount slightly as the filter fills.
func (f *BloomFilter) ApproxItems() uint64 {
	return f.items.Load()
}

// FillRatio returns the fraction of bits currently set, in [0, 1].
func (f *BloomFilter) FillRatio() float64 {
	set := 0
	for i := range f.words {
		set += bits.OnesCount64(atomic.LoadUint64(&f.words[i]))
	}
	return float64(set) / float64(f.mBits)
}

// EstimatedFalsePositiveRate returns the expected false-positive rate for
// the current load, from the standard formula:
//
//	p = (1 - e^(-k*n/m))^k
//
// where n is the approximate distinct-item count.
func (f *BloomFilter) EstimatedFalsePositiveRate() float64 {
	n := float64(f.items.Load())
	if n == 0 {
		return 0
	}
	k := float64(f.hashCount)
	m := float64(f.mBits)
	return math.Pow(1-math.Exp(-k*n/m), k)
}

// bloomHash computes the two base hashes for double hashing. The derived
// index for hash function i is (h1 + i*h2) mod m.
//
// h1 is FNV-1a and h2 is FNV-1: same constants, different mixing order, so
// the two are independent enough for the double-hashing scheme. h2 is forced
// odd so that, for power-of-two m, the stride walks all bit positions.
func bloomHash(item []byte) (h1, h2 uint64) {
	const (
		fnv64Offset = 14695981039346656037
		fnv64Prime  = 1099511628211
	)

	h1 = uint64(fnv64Offset)
	h2 = uint64(fnv64Offset)
	for _, b := range item {
		h1 ^= uint64(b)
		h1 *= fnv64Prime

		h2 *= fnv64Prime
		h2 ^= uint64(b)
	}

	if h2%2 == 0 {
		h2++
	}
	return h1, h2
}

// stringBytes views a string as a byte slice without allocation.
// #nosec G103 - Safe usage: the bytes are only read, never written.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
