package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/service"
)

// SaveDraws persists draws for a lottery, ignoring dates already on
// record, and returns how many rows were actually inserted.
func (s *SQLiteStorage) SaveDraws(ctx context.Context, lottery string, draws []model.Draw) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(lottery, "lottery"); err != nil {
		return 0, err
	}
	if err := validateDraws(draws); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, d := range draws {
		main, marshalErr := json.Marshal(d.Main)
		if marshalErr != nil {
			return 0, fmt.Errorf("failed to encode main numbers: %w", marshalErr)
		}

		result, execErr := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO draws (lottery, date, main, bonus)
			VALUES (?, ?, ?, ?)
		`, lottery, d.Date.Format(model.DateLayout), string(main), d.Bonus)
		if execErr != nil {
			return 0, fmt.Errorf("failed to save draw: %w", execErr)
		}

		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		added += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit draws: %w", err)
	}
	return added, nil
}

// GetDraws retrieves a lottery's draws newest first.
func (s *SQLiteStorage) GetDraws(ctx context.Context, lottery string, filter service.DrawFilter) ([]model.Draw, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(lottery, "lottery"); err != nil {
		return nil, err
	}

	query := `
		SELECT date, main, bonus
		FROM draws
		WHERE lottery = ?`
	args := []any{lottery}

	if filter.Since != nil {
		query += ` AND date >= ?`
		args = append(args, filter.Since.Format(model.DateLayout))
	}
	query += ` ORDER BY date DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var draws []model.Draw
	for rows.Next() {
		draw, scanErr := scanDraw(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		draws = append(draws, draw)
	}

	return draws, rows.Err()
}

// GetLatestDraw retrieves the most recent draw for a lottery.
func (s *SQLiteStorage) GetLatestDraw(ctx context.Context, lottery string) (*model.Draw, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(lottery, "lottery"); err != nil {
		return nil, err
	}

	var (
		dateStr string
		mainStr string
		bonus   int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT date, main, bonus
		FROM draws
		WHERE lottery = ?
		ORDER BY date DESC
		LIMIT 1
	`, lottery).Scan(&dateStr, &mainStr, &bonus)

	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}

	draw, err := decodeDraw(dateStr, mainStr, bonus)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// CountDraws returns the number of stored draws for a lottery.
func (s *SQLiteStorage) CountDraws(ctx context.Context, lottery string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(lottery, "lottery"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM draws WHERE lottery = ?
	`, lottery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// scanDraw reads one draw row from a result set.
func scanDraw(rows *sql.Rows) (model.Draw, error) {
	var (
		dateStr string
		mainStr string
		bonus   int
	)
	if err := rows.Scan(&dateStr, &mainStr, &bonus); err != nil {
		return model.Draw{}, fmt.Errorf("failed to scan draw: %w", err)
	}
	return decodeDraw(dateStr, mainStr, bonus)
}

// decodeDraw rebuilds a draw from its stored representation.
func decodeDraw(dateStr, mainStr string, bonus int) (model.Draw, error) {
	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: bad draw date %q", common.ErrDatabaseCorrupted, dateStr)
	}

	var main []int
	if err := json.Unmarshal([]byte(mainStr), &main); err != nil {
		return model.Draw{}, fmt.Errorf("%w: bad main numbers %q", common.ErrDatabaseCorrupted, mainStr)
	}

	return model.Draw{Date: date, Main: main, Bonus: bonus}, nil
}
