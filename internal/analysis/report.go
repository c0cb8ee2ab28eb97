package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

const (
	// defaultWorkers bounds concurrent per-lottery analyses.
	defaultWorkers = 4

	// maxReportCombos caps how many proven combos a report carries.
	maxReportCombos = 10
)

// LotteryOutcome pairs one lottery's report with any analysis error.
type LotteryOutcome struct {
	Report  model.LotteryReport
	Lottery string
	Err     error
}

// ComparisonRow summarizes one lottery's pattern strength for the
// cross-lottery ranking.
type ComparisonRow struct {
	Lottery        string  `json:"lottery"`
	Name           string  `json:"name"`
	AvgCoverage    float64 `json:"avgCoverage"`
	AvgImprovement float64 `json:"avgImprovement"`
	HotAccuracy    float64 `json:"hotAccuracy"`
	Draws          int     `json:"draws"`
}

// Aggregator runs the full analysis pipeline for a set of lotteries.
type Aggregator struct {
	profiles []model.LotteryProfile
	config   Config
	workers  int
}

// NewAggregator creates an aggregator with default validation settings.
func NewAggregator(profiles []model.LotteryProfile) *Aggregator {
	return NewAggregatorWithConfig(profiles, DefaultConfig())
}

// NewAggregatorWithConfig creates an aggregator with custom validation
// settings.
func NewAggregatorWithConfig(profiles []model.LotteryProfile, config Config) *Aggregator {
	workers := defaultWorkers
	if len(profiles) < workers {
		workers = len(profiles)
	}
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		profiles: profiles,
		config:   config,
		workers:  workers,
	}
}

// Analyze produces the complete report for one lottery from its raw
// draw history. Pools and constraint audits are always computed; the
// walk-forward validators mark themselves not applicable below the
// minimum sample size.
func (a *Aggregator) Analyze(profile model.LotteryProfile, raw []model.Draw) (model.LotteryReport, error) {
	start := time.Now()

	store := NewStore(profile)
	seq := store.Load(raw)
	seq.SortNewestFirst()

	report := model.LotteryReport{
		GeneratedAt: time.Now().UTC(),
		Lottery:     profile.Key,
		Name:        profile.Name,
		Draws:       len(seq),
		Excluded:    len(store.Rejected()),
	}

	for _, rej := range store.Rejected() {
		slog.Debug("excluded draw",
			"lottery", profile.Key,
			"index", rej.Index,
			"reason", rej.Reason)
	}

	if len(seq) == 0 {
		return report, fmt.Errorf("failed to analyze %s: %w", profile.Key, ErrInsufficientData)
	}

	if latest, ok := seq.Latest(); ok {
		report.LastDraw = &latest
	}

	builder := NewPoolBuilder(profile)
	report.PositionPools = builder.PositionPools(seq, profile.Window, profile.PoolSize)
	report.PositionCoverage = make([]float64, len(report.PositionPools))
	report.PositionImprovement = make([]float64, len(report.PositionPools))
	for i, pool := range report.PositionPools {
		report.PositionCoverage[i] = builder.Coverage(pool, seq, profile.Window)
		report.PositionImprovement[i] = builder.ImprovementRatio(
			report.PositionCoverage[i], profile.PoolSize, profile.MainMax)
	}

	report.BonusPool = builder.BonusPool(seq, profile.Window, profile.BonusPoolSize)
	report.BonusCoverage = builder.Coverage(report.BonusPool, seq, profile.Window)
	report.BonusImprovement = builder.ImprovementRatio(
		report.BonusCoverage, profile.BonusPoolSize, profile.BonusMax)

	report.HotNumbers = builder.HotNumbers(seq, profile.HotWindow, profile.HotPoolSize)

	combos := NewComboAnalyzer(profile, a.config.ComboSize, a.config.MinOccurrence)
	proven := combos.ProvenCombos(seq.Window(profile.Window))
	if len(proven.Combos) > maxReportCombos {
		report.ComboPool = proven.Combos[:maxReportCombos]
	} else {
		report.ComboPool = proven.Combos
	}

	backtester := NewBacktesterWithConfig(profile, a.config)
	report.ConstraintSummary = backtester.Constraints(seq)
	report.Backtest = backtester.Run(seq)

	slog.Info("analyzed lottery",
		"lottery", profile.Key,
		"draws", report.Draws,
		"excluded", report.Excluded,
		"duration", time.Since(start))

	return report, nil
}

// Run analyzes every configured lottery concurrently. Histories are
// keyed by lottery key; a panic or error in one lottery never blocks
// the others. Outcomes come back in configured profile order.
func (a *Aggregator) Run(ctx context.Context, histories map[string][]model.Draw) []LotteryOutcome {
	workChan := make(chan model.LotteryProfile, len(a.profiles))
	resultsChan := make(chan LotteryOutcome, len(a.profiles))

	var wg sync.WaitGroup
	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for profile := range workChan {
				select {
				case <-ctx.Done():
					resultsChan <- LotteryOutcome{Lottery: profile.Key, Err: ctx.Err()}
					continue
				default:
				}
				resultsChan <- a.analyzeSafely(profile, histories[profile.Key])
			}
		}()
	}

	for _, profile := range a.profiles {
		workChan <- profile
	}
	close(workChan)
	wg.Wait()
	close(resultsChan)

	order := make(map[string]int, len(a.profiles))
	for i, p := range a.profiles {
		order[p.Key] = i
	}

	outcomes := make([]LotteryOutcome, 0, len(a.profiles))
	for outcome := range resultsChan {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return order[outcomes[i].Lottery] < order[outcomes[j].Lottery]
	})
	return outcomes
}

// analyzeSafely isolates one lottery's analysis so a panic surfaces as
// an error for that lottery alone.
func (a *Aggregator) analyzeSafely(profile model.LotteryProfile, raw []model.Draw) (outcome LotteryOutcome) {
	outcome.Lottery = profile.Key

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panic", "lottery", profile.Key, "panic", r)
			outcome.Err = fmt.Errorf("analysis panicked for %s: %v", profile.Key, r)
		}
	}()

	report, err := a.Analyze(profile, raw)
	outcome.Report = report
	outcome.Err = err
	return outcome
}

// Comparison ranks lotteries by how far their position pools beat
// random selection, strongest first.
func (a *Aggregator) Comparison(reports []model.LotteryReport) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(reports))
	for _, r := range reports {
		row := ComparisonRow{
			Lottery: r.Lottery,
			Name:    r.Name,
			Draws:   r.Draws,
		}
		if len(r.PositionCoverage) > 0 {
			for i := range r.PositionCoverage {
				row.AvgCoverage += r.PositionCoverage[i]
				row.AvgImprovement += r.PositionImprovement[i]
			}
			row.AvgCoverage /= float64(len(r.PositionCoverage))
			row.AvgImprovement /= float64(len(r.PositionImprovement))
		}
		if r.Backtest.HotNumbers.Applicable {
			row.HotAccuracy = r.Backtest.HotNumbers.Accuracy
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgImprovement > rows[j].AvgImprovement
	})
	return rows
}
