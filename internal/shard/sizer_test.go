package shard

import "testing"

// --- NumShards tests ---

func TestNumShards(t *testing.T) {
	const target = DefaultTargetSize
	cases := []struct {
		name      string
		estimated int64
		want      int
	}{
		{"zero", 0, 1},
		{"tiny", 1, 1},
		{"exactly one target", target, 1},
		{"just over one target", target + 1, 2},
		// 500KB average over 1000 examples ≈ 488 MiB estimated ⇒ 2 shards
		// at the 420 MiB target.
		{"500KB avg x 1000", 500 * 1024 * 1000, 2},
		{"ten targets", 10 * target, 10},
	}
	for _, tc := range cases {
		if got := NumShards(tc.estimated, target); got != tc.want {
			t.Errorf("%s: NumShards(%d) = %d, want %d", tc.name, tc.estimated, got, tc.want)
		}
	}
}

func TestNumShards_AtLeastOne(t *testing.T) {
	for _, est := range []int64{-5, 0, 1, DefaultTargetSize * 3} {
		if got := NumShards(est, DefaultTargetSize); got < 1 {
			t.Errorf("NumShards(%d) = %d, want >= 1", est, got)
		}
	}
}

func TestEstimateTotal(t *testing.T) {
	if got := EstimateTotal(500*1024, 1000); got != 500*1024*1000 {
		t.Errorf("EstimateTotal: got %d, want %d", got, 500*1024*1000)
	}
}

// --- Boundaries tests ---

// Concatenating all ranges must reproduce every example index exactly
// once, in order.
func TestBoundaries_Contiguous(t *testing.T) {
	cases := []struct{ n, k int }{
		{10, 1}, {10, 3}, {10, 10}, {7, 2}, {1, 1}, {100, 7}, {5, 5},
	}
	for _, tc := range cases {
		ranges := Boundaries(tc.n, tc.k)
		if len(ranges) != tc.k {
			t.Errorf("n=%d k=%d: got %d ranges, want %d", tc.n, tc.k, len(ranges), tc.k)
			continue
		}
		next := 0
		for i, r := range ranges {
			if r.Start != next {
				t.Errorf("n=%d k=%d: range %d starts at %d, want %d", tc.n, tc.k, i, r.Start, next)
			}
			if r.End < r.Start {
				t.Errorf("n=%d k=%d: range %d inverted: %+v", tc.n, tc.k, i, r)
			}
			next = r.End
		}
		if next != tc.n {
			t.Errorf("n=%d k=%d: ranges end at %d, want %d", tc.n, tc.k, next, tc.n)
		}
	}
}

// The first n%k ranges hold one extra example.
func TestBoundaries_Balanced(t *testing.T) {
	ranges := Boundaries(10, 3)
	wantLens := []int{4, 3, 3}
	for i, r := range ranges {
		if r.Len() != wantLens[i] {
			t.Errorf("range %d: len %d, want %d", i, r.Len(), wantLens[i])
		}
	}
}

// --- FileName tests ---

func TestFileName(t *testing.T) {
	got := FileName("train", 0, 2)
	if got != "train-00000-of-00002.parquet" {
		t.Errorf("got %q, want train-00000-of-00002.parquet", got)
	}
	got = FileName("validation", 11, 120)
	if got != "validation-00011-of-00120.parquet" {
		t.Errorf("got %q, want validation-00011-of-00120.parquet", got)
	}
}
