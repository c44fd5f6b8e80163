// Package shard computes shard counts and boundaries from a sampled size
// estimate and writes shards as parquet files.
//
// Shard count is a heuristic: the average encoded size of a capped sample
// is extrapolated to the whole split and divided by a target byte budget.
// Actual shard sizes can deviate from the target when the sample is
// unrepresentative; boundaries are exact and contiguous regardless.
package shard

import "fmt"

// DefaultTargetSize is the default byte budget per shard (420 MiB).
const DefaultTargetSize int64 = 420 * 1024 * 1024

// DefaultSampleSize caps how many examples are re-encoded to estimate the
// average image size.
const DefaultSampleSize = 100

// EstimateTotal extrapolates a split's encoded size from the average
// sampled image size and the example count.
func EstimateTotal(avgSize int64, numExamples int) int64 {
	return avgSize * int64(numExamples)
}

// NumShards returns ceil(estimatedTotal / targetSize), floored at 1 so an
// empty or tiny split still produces one shard.
func NumShards(estimatedTotal, targetSize int64) int {
	if estimatedTotal <= 0 {
		return 1
	}
	n := estimatedTotal / targetSize
	if estimatedTotal%targetSize != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return int(n)
}

// Range is a half-open example interval [Start, End) within one split.
type Range struct {
	Start int
	End   int
}

// Len returns the number of examples in the range.
func (r Range) Len() int { return r.End - r.Start }

// Boundaries partitions n examples into k contiguous ranges. The first
// n%k ranges hold one extra example, so concatenating all ranges
// reproduces 0..n-1 exactly once, in order.
func Boundaries(n, k int) []Range {
	if k < 1 {
		k = 1
	}
	base := n / k
	rem := n % k

	ranges := make([]Range, k)
	start := 0
	for i := 0; i < k; i++ {
		length := base
		if i < rem {
			length++
		}
		ranges[i] = Range{Start: start, End: start + length}
		start += length
	}
	return ranges
}

// FileName returns the shard file name for one split,
// e.g. "train-00000-of-00002.parquet".
func FileName(split string, index, count int) string {
	return fmt.Sprintf("%s-%05d-of-%05d.parquet", split, index, count)
}
