package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// SaveJackpot saves or updates the advertised jackpot for a lottery.
func (s *SQLiteStorage) SaveJackpot(ctx context.Context, jackpot *model.Jackpot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateJackpot(jackpot); err != nil {
		return err
	}

	if jackpot.UpdatedAt.IsZero() {
		jackpot.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jackpots (lottery, amount, cash_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lottery) DO UPDATE SET
			amount = excluded.amount,
			cash_value = excluded.cash_value,
			updated_at = excluded.updated_at
	`, jackpot.Lottery, jackpot.Amount, jackpot.CashValue, jackpot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save jackpot: %w", err)
	}
	return nil
}

// GetJackpot retrieves the stored jackpot for a lottery.
func (s *SQLiteStorage) GetJackpot(ctx context.Context, lottery string) (*model.Jackpot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(lottery, "lottery"); err != nil {
		return nil, err
	}

	var jackpot model.Jackpot
	err := s.db.QueryRowContext(ctx, `
		SELECT lottery, amount, cash_value, updated_at
		FROM jackpots
		WHERE lottery = ?
	`, lottery).Scan(
		&jackpot.Lottery,
		&jackpot.Amount,
		&jackpot.CashValue,
		&jackpot.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot: %w", err)
	}

	return &jackpot, nil
}
