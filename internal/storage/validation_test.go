package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

func TestValidateContext(t *testing.T) {
	if err := validateContext(context.Background()); err != nil {
		t.Errorf("validateContext(Background) error = %v", err)
	}
	var nilCtx context.Context
	if err := validateContext(nilCtx); !errors.Is(err, ErrNilContext) {
		t.Errorf("validateContext(nil) error = %v, want ErrNilContext", err)
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "l4l", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.input, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString(%q) error = %v, want ErrEmptyString", tt.input, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain address", input: "reader@example.com", wantErr: false},
		{name: "plus tag", input: "reader+news@example.com", wantErr: false},
		{name: "surrounding space trimmed", input: "  reader@example.com  ", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "no at sign", input: "example.com", wantErr: true},
		{name: "no domain dot", input: "reader@localhost", wantErr: true},
		{name: "embedded space", input: "rea der@example.com", wantErr: true},
		{name: "double at", input: "reader@@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("validateEmail(%q) error = %v, want ErrInvalidEmail", tt.input, err)
			}
		})
	}
}

func TestValidateDraws(t *testing.T) {
	valid := model.Draw{
		Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Main: []int{3, 14, 22, 31, 44},
	}

	tests := []struct {
		wantErr error
		name    string
		draws   []model.Draw
	}{
		{name: "valid", draws: []model.Draw{valid}, wantErr: nil},
		{name: "nil slice", draws: nil, wantErr: ErrNilParameter},
		{name: "empty slice", draws: []model.Draw{}, wantErr: ErrEmptySlice},
		{
			name:    "missing date",
			draws:   []model.Draw{{Main: []int{1, 2, 3, 4, 5}}},
			wantErr: ErrInvalidDraw,
		},
		{
			name:    "missing main numbers",
			draws:   []model.Draw{{Date: valid.Date}},
			wantErr: ErrInvalidDraw,
		},
		{
			name:    "bad draw after valid one",
			draws:   []model.Draw{valid, {Date: valid.Date.AddDate(0, 0, 1)}},
			wantErr: ErrInvalidDraw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDraws(tt.draws)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateDraws() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateDraws() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJackpot(t *testing.T) {
	if err := validateJackpot(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateJackpot(nil) error = %v, want ErrNilParameter", err)
	}
	if err := validateJackpot(&model.Jackpot{Amount: 1}); !errors.Is(err, ErrEmptyString) {
		t.Errorf("validateJackpot() without lottery error = %v, want ErrEmptyString", err)
	}
	if err := validateJackpot(&model.Jackpot{Lottery: "pb", CashValue: -5}); err == nil {
		t.Error("validateJackpot() accepted negative cash value")
	}
	if err := validateJackpot(&model.Jackpot{Lottery: "pb"}); err != nil {
		t.Errorf("validateJackpot() zero amounts error = %v, want nil", err)
	}
}

func TestValidateRun(t *testing.T) {
	if err := validateRun(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateRun(nil) error = %v, want ErrNilParameter", err)
	}
	if err := validateRun(&model.ValidationRun{}); !errors.Is(err, ErrEmptyString) {
		t.Errorf("validateRun() without lottery error = %v, want ErrEmptyString", err)
	}
	if err := validateRun(&model.ValidationRun{Lottery: "l4l"}); err != nil {
		t.Errorf("validateRun() error = %v, want nil", err)
	}
}
