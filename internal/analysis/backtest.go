package analysis

import (
	"github.com/princessupload/audience-newsletter/internal/model"
)

// Config controls the walk-forward validation run.
type Config struct {
	// TrainRatio positions the train/test boundary at
	// floor(len*ratio) in a newest-first sequence. Draws before the
	// boundary (newer) are tested; draws from it onward (older) are
	// trained on.
	TrainRatio float64

	// MinDraws is the history size below which every method reports
	// itself not applicable instead of producing noise.
	MinDraws int

	// PoolSize is the per-position pool size for the frequency method.
	PoolSize int

	// HotWindow and HotPoolSize control the rolling hot-number method.
	HotWindow   int
	HotPoolSize int

	// ComboSize and MinOccurrence control the proven-combo method.
	ComboSize     int
	MinOccurrence int
}

// DefaultConfig returns the validation settings used in production.
func DefaultConfig() Config {
	return Config{
		TrainRatio:    0.8,
		MinDraws:      100,
		PoolSize:      8,
		HotWindow:     20,
		HotPoolSize:   10,
		ComboSize:     3,
		MinOccurrence: 2,
	}
}

// Backtester measures each prediction method against held-out draws.
// Sequences must be newest-first; every method trains strictly on
// draws older than the ones it is scored against.
type Backtester struct {
	pools   *PoolBuilder
	combos  *ComboAnalyzer
	filter  *Filter
	profile model.LotteryProfile
	config  Config
}

// NewBacktester creates a backtester with default settings.
func NewBacktester(profile model.LotteryProfile) *Backtester {
	return NewBacktesterWithConfig(profile, DefaultConfig())
}

// NewBacktesterWithConfig creates a backtester with custom settings.
func NewBacktesterWithConfig(profile model.LotteryProfile, config Config) *Backtester {
	return &Backtester{
		pools:   NewPoolBuilder(profile),
		combos:  NewComboAnalyzer(profile, config.ComboSize, config.MinOccurrence),
		filter:  NewFilter(profile.Constraints),
		profile: profile,
		config:  config,
	}
}

// Split divides a newest-first sequence at floor(len*TrainRatio).
// The older tail is the training set and the newer head is the test
// set, so nothing trained on postdates anything scored.
func (b *Backtester) Split(seq model.DrawSequence) (train, test model.DrawSequence) {
	splitIdx := int(float64(len(seq)) * b.config.TrainRatio)
	return seq[splitIdx:], seq[:splitIdx]
}

// PositionFrequency builds position pools from the training draws and
// counts how many test-draw numbers land in the pool for their sorted
// position.
func (b *Backtester) PositionFrequency(seq model.DrawSequence) model.MethodResult {
	if len(seq) < b.config.MinDraws {
		return model.MethodResult{}
	}

	train, test := b.Split(seq)
	pools := b.pools.PositionPools(train, b.profile.Window, b.config.PoolSize)

	hits, total := 0, 0
	for _, d := range test {
		sorted := d.SortedMain()
		for pos, n := range sorted {
			if pos >= len(pools) {
				break
			}
			total++
			if pools[pos].Contains(n) {
				hits++
			}
		}
	}

	result := model.MethodResult{
		TrainSize:  len(train),
		TestSize:   len(test),
		Hits:       hits,
		Total:      total,
		Baseline:   float64(b.config.PoolSize) / float64(b.profile.MainMax) * 100,
		Applicable: true,
	}
	if total > 0 {
		result.Accuracy = float64(hits) / float64(total) * 100
	}
	if result.Baseline > 0 {
		result.Improvement = result.Accuracy / result.Baseline
	}
	return result
}

// HotNumbers scores the rolling hot-number method. For each test draw
// it rebuilds the hot pool from the HotWindow draws immediately older
// than that draw, so the pool never contains information from the draw
// being scored or anything after it. Test draws without a full window
// of history are skipped.
func (b *Backtester) HotNumbers(seq model.DrawSequence) model.MethodResult {
	if len(seq) < b.config.MinDraws {
		return model.MethodResult{}
	}

	_, test := b.Split(seq)
	window := b.config.HotWindow

	hits, total := 0, 0
	for i, d := range test {
		if i+window >= len(seq) {
			break
		}
		history := seq[i+1 : i+1+window]
		hot := b.pools.HotNumbers(history, 0, b.config.HotPoolSize)
		for _, n := range d.Main {
			total++
			if hot.Contains(n) {
				hits++
			}
		}
	}

	result := model.MethodResult{
		TestSize:   len(test),
		Window:     window,
		PoolSize:   b.config.HotPoolSize,
		Hits:       hits,
		Total:      total,
		Baseline:   float64(b.config.HotPoolSize) / float64(b.profile.MainMax) * 100,
		Applicable: true,
	}
	if total > 0 {
		result.Accuracy = float64(hits) / float64(total) * 100
	}
	if result.Baseline > 0 {
		result.Improvement = result.Accuracy / result.Baseline
	}
	return result
}

// RepeatPattern measures how often a number carries over from one draw
// to the next across the whole sequence.
func (b *Backtester) RepeatPattern(seq model.DrawSequence) model.RepeatResult {
	if len(seq) < b.config.MinDraws {
		return model.RepeatResult{}
	}

	result := model.RepeatResult{Applicable: true}
	for i := 0; i+1 < len(seq); i++ {
		prev := make(map[int]bool, len(seq[i+1].Main))
		for _, n := range seq[i+1].Main {
			prev[n] = true
		}
		for _, n := range seq[i].Main {
			if prev[n] {
				result.Repeats++
			}
		}
		result.TotalNumbers += len(seq[i].Main)
		result.DrawsChecked++
	}
	if result.TotalNumbers > 0 {
		result.RepeatRate = float64(result.Repeats) / float64(result.TotalNumbers)
	}
	return result
}

// ProvenCombos mines recurring combinations from the training draws
// and scores them against the test draws.
func (b *Backtester) ProvenCombos(seq model.DrawSequence) model.ComboResult {
	if len(seq) < b.config.MinDraws {
		return model.ComboResult{}
	}

	train, test := b.Split(seq)
	pool := b.combos.ProvenCombos(train)
	eval := b.combos.Evaluate(pool, test)

	result := model.ComboResult{
		TrainSize:           len(train),
		TestSize:            len(test),
		ProvenCount:         pool.Len(),
		TotalHits:           eval.TotalHits,
		DrawsWithHit:        eval.DrawsWithHit,
		TotalPossibleCombos: eval.TotalPossibleCombos,
		ExpectedPerTicket:   b.combos.ExpectedPerTicket(pool.Len()),
		Applicable:          true,
	}
	if result.TestSize > 0 {
		result.HitsPerTicket = float64(result.TotalHits) / float64(result.TestSize)
	}
	if result.ExpectedPerTicket > 0 {
		result.Improvement = result.HitsPerTicket / result.ExpectedPerTicket
	}
	return result
}

// Constraints reports how many draws in the sequence satisfy every
// structural constraint.
func (b *Backtester) Constraints(seq model.DrawSequence) model.ConstraintSummary {
	summary := model.ConstraintSummary{Spec: b.profile.Constraints}
	if len(seq) == 0 {
		return summary
	}
	passed, rate := b.filter.PassRate(seq)
	summary.Total = len(seq)
	summary.Passed = passed
	summary.PassRate = rate
	summary.Applicable = true
	return summary
}

// Run executes every validation method over the sequence.
func (b *Backtester) Run(seq model.DrawSequence) model.BacktestSummary {
	return model.BacktestSummary{
		PositionFrequency: b.PositionFrequency(seq),
		HotNumbers:        b.HotNumbers(seq),
		RepeatPattern:     b.RepeatPattern(seq),
		ProvenCombos:      b.ProvenCombos(seq),
	}
}
