package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// AddSubscriber adds a newsletter recipient. Re-adding an unsubscribed
// address reactivates it without losing the original signup date.
func (s *SQLiteStorage) AddSubscriber(ctx context.Context, email, source string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if source == "" {
		source = "local"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (email, source)
		VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET
			unsubscribed_at = NULL,
			source = excluded.source
	`, normalizeEmail(email), source)

	if err != nil {
		return fmt.Errorf("failed to add subscriber: %w", err)
	}
	return nil
}

// RemoveSubscriber marks a recipient as unsubscribed. The row is kept
// so the address never gets re-imported from a stale list.
func (s *SQLiteStorage) RemoveSubscriber(ctx context.Context, email string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE subscribers
		SET unsubscribed_at = CURRENT_TIMESTAMP
		WHERE email = ? AND unsubscribed_at IS NULL
	`, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to remove subscriber: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// GetActiveSubscribers retrieves every recipient still subscribed.
func (s *SQLiteStorage) GetActiveSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.querySubscribers(ctx, `
		SELECT email, source, subscribed_at, unsubscribed_at
		FROM subscribers
		WHERE unsubscribed_at IS NULL
		ORDER BY email
	`)
}

// GetAllSubscribers retrieves every recipient, including unsubscribed.
func (s *SQLiteStorage) GetAllSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.querySubscribers(ctx, `
		SELECT email, source, subscribed_at, unsubscribed_at
		FROM subscribers
		ORDER BY email
	`)
}

func (s *SQLiteStorage) querySubscribers(ctx context.Context, query string) ([]model.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subscribers []model.Subscriber
	for rows.Next() {
		var (
			sub            model.Subscriber
			unsubscribedAt sql.NullTime
		)
		err := rows.Scan(
			&sub.Email,
			&sub.Source,
			&sub.SubscribedAt,
			&unsubscribedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		if unsubscribedAt.Valid {
			t := unsubscribedAt.Time
			sub.UnsubscribedAt = &t
		}
		subscribers = append(subscribers, sub)
	}

	return subscribers, rows.Err()
}

// normalizeEmail lowercases and trims an address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
