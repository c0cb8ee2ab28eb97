package analysis

import (
	"sort"

	"github.com/princessupload/audience-newsletter/internal/model"
)

// PoolBuilder computes frequency-ranked number pools over a draw
// window. Pools answer "which numbers have appeared most often", per
// sorted position for main numbers and unpositioned for the bonus.
type PoolBuilder struct {
	profile model.LotteryProfile
}

// NewPoolBuilder creates a builder for one lottery.
func NewPoolBuilder(profile model.LotteryProfile) *PoolBuilder {
	return &PoolBuilder{profile: profile}
}

// PositionPools tallies each draw's sorted main numbers by rank
// position over the most recent window draws and returns the top
// poolSize numbers per position, most frequent first. Ties break
// toward the smaller number.
func (b *PoolBuilder) PositionPools(seq model.DrawSequence, window, poolSize int) model.PositionPools {
	recent := seq.Window(window)
	counts := make([]map[int]int, b.profile.PickCount)
	for pos := range counts {
		counts[pos] = make(map[int]int)
	}

	for _, d := range recent {
		sorted := d.SortedMain()
		if len(sorted) != b.profile.PickCount {
			continue
		}
		for pos, n := range sorted {
			counts[pos][n]++
		}
	}

	pools := make(model.PositionPools, b.profile.PickCount)
	for pos := range counts {
		pools[pos] = rankCounts(counts[pos], poolSize)
	}
	return pools
}

// BonusPool tallies bonus numbers over the most recent window draws
// and returns the top poolSize, most frequent first.
func (b *PoolBuilder) BonusPool(seq model.DrawSequence, window, poolSize int) model.RankedPool {
	recent := seq.Window(window)
	counts := make(map[int]int)
	for _, d := range recent {
		counts[d.Bonus]++
	}
	return rankCounts(counts, poolSize)
}

// HotNumbers tallies all main numbers regardless of position over the
// most recent window draws and returns the top poolSize.
func (b *PoolBuilder) HotNumbers(seq model.DrawSequence, window, poolSize int) model.RankedPool {
	recent := seq.Window(window)
	counts := make(map[int]int)
	for _, d := range recent {
		for _, n := range d.Main {
			counts[n]++
		}
	}
	return rankCounts(counts, poolSize)
}

// Coverage returns the percentage of draws in the window whose number
// at this pool's position fell inside the pool. The pool's counts were
// tallied over the same window, so coverage is TotalCount over the
// window size.
func (b *PoolBuilder) Coverage(pool model.RankedPool, seq model.DrawSequence, window int) float64 {
	n := len(seq.Window(window))
	if n == 0 {
		return 0
	}
	return float64(pool.TotalCount()) / float64(n) * 100
}

// ImprovementRatio compares observed coverage against the coverage a
// random pool of the same size would achieve. A ratio of 1.0 means the
// pool carries no information; 2.0 means twice random.
func (b *PoolBuilder) ImprovementRatio(coverage float64, poolSize, rangeMax int) float64 {
	if poolSize <= 0 || rangeMax <= 0 {
		return 0
	}
	baseline := float64(poolSize) / float64(rangeMax) * 100
	if baseline == 0 {
		return 0
	}
	return coverage / baseline
}

// rankCounts orders a frequency map by count descending, then number
// ascending, and keeps the top poolSize entries.
func rankCounts(counts map[int]int, poolSize int) model.RankedPool {
	pool := make(model.RankedPool, 0, len(counts))
	for n, c := range counts {
		pool = append(pool, model.PoolEntry{Number: n, Count: c})
	}
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Count != pool[j].Count {
			return pool[i].Count > pool[j].Count
		}
		return pool[i].Number < pool[j].Number
	})
	if poolSize > 0 && len(pool) > poolSize {
		pool = pool[:poolSize]
	}
	return pool
}
