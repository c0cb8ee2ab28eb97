// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

// DrawFilter defines filtering options for draw queries.
type DrawFilter struct {
	Since *time.Time
	Limit int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Draw operations
	SaveDraws(ctx context.Context, lottery string, draws []model.Draw) (int, error)
	GetDraws(ctx context.Context, lottery string, filter DrawFilter) ([]model.Draw, error)
	GetLatestDraw(ctx context.Context, lottery string) (*model.Draw, error)
	CountDraws(ctx context.Context, lottery string) (int, error)

	// Jackpot operations
	SaveJackpot(ctx context.Context, jackpot *model.Jackpot) error
	GetJackpot(ctx context.Context, lottery string) (*model.Jackpot, error)

	// Subscriber operations
	AddSubscriber(ctx context.Context, email, source string) error
	RemoveSubscriber(ctx context.Context, email string) error
	GetActiveSubscribers(ctx context.Context) ([]model.Subscriber, error)
	GetAllSubscribers(ctx context.Context) ([]model.Subscriber, error)

	// Validation history
	SaveValidationRun(ctx context.Context, run *model.ValidationRun) error
	GetLatestValidationRun(ctx context.Context, lottery string) (*model.ValidationRun, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// SendStats shows the results of a newsletter delivery run.
type SendStats struct {
	Total    int
	Sent     int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
