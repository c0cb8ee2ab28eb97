// Package analysis implements the pattern-analysis and walk-forward
// validation engine: frequency pools, proven combos, constraint
// filters, and honest out-of-sample backtests over lottery draw
// histories. The package is pure computation; fetching, rendering, and
// delivery live in their own packages.
package analysis

import (
	"github.com/princessupload/audience-newsletter/internal/model"
)

// Store holds the validated draw sequence for a single lottery.
type Store struct {
	profile  model.LotteryProfile
	seq      model.DrawSequence
	rejected []DataError
}

// NewStore creates an empty store for one lottery.
func NewStore(profile model.LotteryProfile) *Store {
	return &Store{profile: profile}
}

// Load validates raw draws and retains the survivors in input order.
// Invalid draws are recorded as DataErrors and skipped; Load never
// fails the whole batch and never reorders input. Callers supply
// newest-first data or sort the result explicitly.
func (s *Store) Load(raw []model.Draw) model.DrawSequence {
	s.seq = make(model.DrawSequence, 0, len(raw))
	s.rejected = nil

	seenDates := make(map[string]bool, len(raw))
	for i, d := range raw {
		if reason := s.validate(d, seenDates); reason != "" {
			s.rejected = append(s.rejected, DataError{
				Lottery: s.profile.Key,
				Date:    d.Date,
				Index:   i,
				Reason:  reason,
			})
			continue
		}
		seenDates[d.Date.Format(model.DateLayout)] = true
		s.seq = append(s.seq, d)
	}

	return s.seq
}

// validate returns the exclusion reason for a draw, or "" when it is
// acceptable.
func (s *Store) validate(d model.Draw, seenDates map[string]bool) string {
	if d.Date.IsZero() {
		return ReasonMissingDate
	}
	if seenDates[d.Date.Format(model.DateLayout)] {
		return ReasonDuplicateDate
	}
	if len(d.Main) != s.profile.PickCount {
		return ReasonWrongPickCount
	}
	seen := make(map[int]bool, len(d.Main))
	for _, n := range d.Main {
		if n < 1 || n > s.profile.MainMax {
			return ReasonMainOutOfRange
		}
		if seen[n] {
			return ReasonDuplicateMain
		}
		seen[n] = true
	}
	if d.Bonus < 1 || d.Bonus > s.profile.BonusMax {
		return ReasonBonusOutOfRange
	}
	return ""
}

// Sequence returns the validated draws.
func (s *Store) Sequence() model.DrawSequence {
	return s.seq
}

// Window returns the most recent n validated draws.
func (s *Store) Window(n int) model.DrawSequence {
	return s.seq.Window(n)
}

// Rejected returns the diagnostics for every excluded draw.
func (s *Store) Rejected() []DataError {
	return s.rejected
}

// Len returns the number of validated draws.
func (s *Store) Len() int {
	return len(s.seq)
}
