package model

import (
	"fmt"
	"time"
)

// Strategy describes how tickets built from a lottery's pools are meant
// to be played.
type Strategy string

const (
	// StrategyHold tickets are picked once and replayed every draw.
	StrategyHold Strategy = "HOLD"
	// StrategyHoldReview tickets are held but re-derived every couple of years.
	StrategyHoldReview Strategy = "HOLD_REVIEW"
	// StrategyNextDraw tickets are rebuilt fresh for every draw.
	StrategyNextDraw Strategy = "NEXT_DRAW"
)

// DrawSchedule describes when a lottery draws. Times are Central Time,
// where all four lotteries broadcast from.
type DrawSchedule struct {
	Text     string         // human-readable, e.g. "Mon/Wed/Sat"
	Weekdays []time.Weekday // empty means daily
	Hour     int            // 24-hour clock
	Minute   int
}

// Daily reports whether the lottery draws every day.
func (s DrawSchedule) Daily() bool { return len(s.Weekdays) == 0 }

// DrawsOn reports whether the lottery draws on the given weekday.
func (s DrawSchedule) DrawsOn(d time.Weekday) bool {
	if s.Daily() {
		return true
	}
	for _, w := range s.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// NextDrawAt returns the first scheduled draw at or after now,
// evaluated in now's location.
func (s DrawSchedule) NextDrawAt(now time.Time) time.Time {
	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset)
		if !s.DrawsOn(day.Weekday()) {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, now.Location())
		if !at.Before(now) {
			return at
		}
	}
	return now
}

// LastDrawAt returns the most recent scheduled draw strictly before now.
func (s DrawSchedule) LastDrawAt(now time.Time) time.Time {
	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, -offset)
		if !s.DrawsOn(day.Weekday()) {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, now.Location())
		if at.Before(now) {
			return at
		}
	}
	return now
}

// ConstraintSpec holds the structural rules a candidate ticket must
// satisfy: sum range, decade spread, consecutiveness, parity, and
// high/low split.
type ConstraintSpec struct {
	SumMin         int `json:"sumMin"`
	SumMax         int `json:"sumMax"`
	MinDecades     int `json:"minDecades"`
	MaxConsecutive int `json:"maxConsecutive"`
	OddMin         int `json:"oddMin"`
	OddMax         int `json:"oddMax"`
	HighMin        int `json:"highMin"`
	HighMax        int `json:"highMax"`
	HighThreshold  int `json:"highThreshold"`
}

// LotteryProfile is the static per-lottery configuration every
// component is parameterized by.
type LotteryProfile struct {
	Key              string
	Name             string
	Emoji            string
	BonusName        string
	StrategyDesc     string
	GrandPrize       string // fixed-prize label; empty when the jackpot varies
	Color            string
	Strategy         Strategy
	BestMethods      []string
	Schedule         DrawSchedule
	Constraints      ConstraintSpec
	MainMax          int
	BonusMax         int
	PickCount        int
	Window           int
	PoolSize         int
	BonusPoolSize    int
	HotWindow        int
	HotPoolSize      int
	FixedCash        int64
	PatternStability float64 // percent, 0 when unknown
}

// Validate checks that the profile's ranges can produce legal draws.
func (p *LotteryProfile) Validate() error {
	if p.Key == "" {
		return fmt.Errorf("lottery profile missing key")
	}
	if p.PickCount <= 0 {
		return fmt.Errorf("lottery %s: pick count must be positive", p.Key)
	}
	if p.MainMax < p.PickCount {
		return fmt.Errorf("lottery %s: main range %d cannot supply %d distinct numbers", p.Key, p.MainMax, p.PickCount)
	}
	if p.BonusMax <= 0 {
		return fmt.Errorf("lottery %s: bonus range must be positive", p.Key)
	}
	return nil
}
