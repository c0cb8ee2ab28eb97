package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// SaveValidationRun appends one analysis run to the history and fills
// in the record's ID and timestamp.
func (s *SQLiteStorage) SaveValidationRun(ctx context.Context, run *model.ValidationRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.RunAt.IsZero() {
		run.RunAt = time.Now().UTC()
	}

	report, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO validation_runs (lottery, run_at, report)
		VALUES (?, ?, ?)
	`, run.Lottery, run.RunAt, string(report))
	if err != nil {
		return fmt.Errorf("failed to save validation run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return nil
}

// GetLatestValidationRun retrieves the most recent run for a lottery.
func (s *SQLiteStorage) GetLatestValidationRun(ctx context.Context, lottery string) (*model.ValidationRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(lottery, "lottery"); err != nil {
		return nil, err
	}

	var (
		run       model.ValidationRun
		reportStr string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, lottery, run_at, report
		FROM validation_runs
		WHERE lottery = ?
		ORDER BY run_at DESC, id DESC
		LIMIT 1
	`, lottery).Scan(&run.ID, &run.Lottery, &run.RunAt, &reportStr)

	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get validation run: %w", err)
	}

	if err := json.Unmarshal([]byte(reportStr), &run.Report); err != nil {
		return nil, fmt.Errorf("%w: bad report payload", common.ErrDatabaseCorrupted)
	}
	return &run, nil
}
