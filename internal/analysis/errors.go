package analysis

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientData indicates a sequence too short for any validator
// to produce a meaningful result.
var ErrInsufficientData = errors.New("insufficient draw history")

// Exclusion reasons recorded by Store.Load.
const (
	ReasonWrongPickCount  = "wrong main number count"
	ReasonDuplicateMain   = "duplicate main number"
	ReasonMainOutOfRange  = "main number out of range"
	ReasonBonusOutOfRange = "bonus number out of range"
	ReasonMissingDate     = "missing or malformed date"
	ReasonDuplicateDate   = "duplicate draw date"
)

// DataError describes a single draw excluded during load. Excluded
// draws are diagnostics, never batch failures.
type DataError struct {
	Date    time.Time
	Lottery string
	Reason  string
	Index   int
}

func (e *DataError) Error() string {
	date := "unknown date"
	if !e.Date.IsZero() {
		date = e.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s draw %d (%s): %s", e.Lottery, e.Index, date, e.Reason)
}
