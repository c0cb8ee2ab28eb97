// Package storage provides the data persistence layer for the newsletter application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/princessupload/audience-newsletter/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidDraw  = errors.New("invalid draw")
	ErrInvalidEmail = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEmail ensures an address is plausibly deliverable.
func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// validateDraws validates a slice of draws before persistence. Deeper
// structural validation happens in the analysis layer; storage only
// rejects rows it could never key or read back.
func validateDraws(draws []model.Draw) error {
	if draws == nil {
		return fmt.Errorf("%w: draws", ErrNilParameter)
	}
	if len(draws) == 0 {
		return fmt.Errorf("%w: draws", ErrEmptySlice)
	}

	for i, d := range draws {
		if d.Date.IsZero() {
			return fmt.Errorf("%w: draw at index %d missing date", ErrInvalidDraw, i)
		}
		if len(d.Main) == 0 {
			return fmt.Errorf("%w: draw at index %d missing main numbers", ErrInvalidDraw, i)
		}
	}
	return nil
}

// validateJackpot validates a jackpot record.
func validateJackpot(jackpot *model.Jackpot) error {
	if jackpot == nil {
		return fmt.Errorf("%w: jackpot", ErrNilParameter)
	}
	if err := validateString(jackpot.Lottery, "lottery"); err != nil {
		return err
	}
	if jackpot.Amount < 0 || jackpot.CashValue < 0 {
		return fmt.Errorf("jackpot for %s: amounts cannot be negative", jackpot.Lottery)
	}
	return nil
}

// validateRun validates a validation run record.
func validateRun(run *model.ValidationRun) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	return validateString(run.Lottery, "lottery")
}
