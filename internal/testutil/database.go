// Package testutil provides shared fixtures for tests that need a real
// storage layer, built-in lottery profiles, or deterministic draw
// histories.
package testutil

import (
	"context"
	"testing"

	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/storage"
)

// TestDB wraps an in-memory storage instance with seeding helpers.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database that is closed
// automatically when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedDraws stores a draw history for one lottery.
func (db *TestDB) SeedDraws(lottery string, draws []model.Draw) {
	db.t.Helper()
	if _, err := db.Storage.SaveDraws(context.Background(), lottery, draws); err != nil {
		db.t.Fatalf("failed to seed %s draws: %v", lottery, err)
	}
}

// SeedSubscribers adds active local subscribers.
func (db *TestDB) SeedSubscribers(emails ...string) {
	db.t.Helper()
	for _, email := range emails {
		if err := db.Storage.AddSubscriber(context.Background(), email, "local"); err != nil {
			db.t.Fatalf("failed to seed subscriber %s: %v", email, err)
		}
	}
}

// SeedJackpot stores a jackpot for one lottery.
func (db *TestDB) SeedJackpot(lottery string, amount, cashValue int64) {
	db.t.Helper()
	jackpot := &model.Jackpot{Lottery: lottery, Amount: amount, CashValue: cashValue}
	if err := db.Storage.SaveJackpot(context.Background(), jackpot); err != nil {
		db.t.Fatalf("failed to seed %s jackpot: %v", lottery, err)
	}
}

// Profile returns one of the built-in lottery profiles.
func Profile(tb testing.TB, key string) *model.LotteryProfile {
	tb.Helper()
	p, err := config.ProfileByKey(config.DefaultProfiles(), key)
	if err != nil {
		tb.Fatalf("unknown test lottery %q: %v", key, err)
	}
	return p
}
