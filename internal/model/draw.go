// Package model defines the domain types shared across the application:
// draws, lottery profiles, number pools, and report structures.
package model

import (
	"encoding/json"
	"sort"
	"time"
)

// DateLayout is the canonical calendar-date format for draws.
const DateLayout = "2006-01-02"

// Draw represents a single historical drawing.
type Draw struct {
	Date  time.Time
	Main  []int
	Bonus int
}

// SortedMain returns the main numbers in ascending order without
// mutating the draw.
func (d *Draw) SortedMain() []int {
	nums := make([]int, len(d.Main))
	copy(nums, d.Main)
	sort.Ints(nums)
	return nums
}

// drawJSON is the wire shape used by data files and report output.
type drawJSON struct {
	Date  string `json:"date"`
	Main  []int  `json:"main"`
	Bonus int    `json:"bonus"`
}

// MarshalJSON renders the draw date as a YYYY-MM-DD string.
func (d Draw) MarshalJSON() ([]byte, error) {
	return json.Marshal(drawJSON{
		Date:  d.Date.Format(DateLayout),
		Main:  d.Main,
		Bonus: d.Bonus,
	})
}

// UnmarshalJSON accepts the canonical YYYY-MM-DD date string. A missing
// or malformed date yields a zero Date so sequence validation can reject
// the single draw instead of aborting the whole file.
func (d *Draw) UnmarshalJSON(data []byte) error {
	var raw drawJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Main = raw.Main
	d.Bonus = raw.Bonus
	d.Date = time.Time{}
	if raw.Date != "" {
		if parsed, err := time.Parse(DateLayout, raw.Date); err == nil {
			d.Date = parsed
		}
	}
	return nil
}

// DrawSequence is an ordered collection of draws for one lottery,
// newest-first by convention.
type DrawSequence []Draw

// Window returns the most recent n draws. When n is not positive or
// exceeds the sequence length, the whole sequence is returned; a zero
// window in a profile means "use all history".
func (s DrawSequence) Window(n int) DrawSequence {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}

// Latest returns the most recent draw.
func (s DrawSequence) Latest() (Draw, bool) {
	if len(s) == 0 {
		return Draw{}, false
	}
	return s[0], true
}

// SortNewestFirst orders the sequence by date descending in place.
// Loading never reorders data; callers that cannot guarantee
// newest-first input call this explicitly.
func (s DrawSequence) SortNewestFirst() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Date.After(s[j].Date)
	})
}
