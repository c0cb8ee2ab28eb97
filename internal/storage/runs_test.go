package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

func testReport(draws int) model.LotteryReport {
	return model.LotteryReport{
		GeneratedAt: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		Lottery:     "l4l",
		Name:        "Lucky for Life",
		Draws:       draws,
		HotNumbers: model.RankedPool{
			{Number: 22, Count: 9},
			{Number: 14, Count: 7},
		},
		Backtest: model.BacktestSummary{
			PositionFrequency: model.MethodResult{
				TrainSize:   draws / 5,
				TestSize:    draws - draws/5,
				Hits:        100,
				Total:       480,
				Accuracy:    20.8,
				Baseline:    16.7,
				Improvement: 1.25,
				Applicable:  true,
			},
			// HotNumbers left not applicable to verify the string
			// form survives the round trip.
		},
	}
}

func TestSQLiteStorage_SaveValidationRun(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	run := &model.ValidationRun{
		Lottery: "l4l",
		RunAt:   time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		Report:  testReport(120),
	}
	if err := store.SaveValidationRun(ctx, run); err != nil {
		t.Fatalf("SaveValidationRun() error = %v", err)
	}
	if run.ID == 0 {
		t.Error("run ID not populated on save")
	}

	got, err := store.GetLatestValidationRun(ctx, "l4l")
	if err != nil {
		t.Fatalf("GetLatestValidationRun() error = %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("ID = %d, want %d", got.ID, run.ID)
	}
	if !got.RunAt.Equal(run.RunAt) {
		t.Errorf("RunAt = %v, want %v", got.RunAt, run.RunAt)
	}
	if got.Report.Draws != 120 || got.Report.Name != "Lucky for Life" {
		t.Errorf("report = %d draws, %q", got.Report.Draws, got.Report.Name)
	}
	if len(got.Report.HotNumbers) != 2 || got.Report.HotNumbers[0].Number != 22 {
		t.Errorf("hot numbers did not round trip: %+v", got.Report.HotNumbers)
	}

	pf := got.Report.Backtest.PositionFrequency
	if !pf.Applicable || pf.Hits != 100 || pf.Improvement != 1.25 {
		t.Errorf("position frequency did not round trip: %+v", pf)
	}
	if got.Report.Backtest.HotNumbers.Applicable {
		t.Error("not-applicable result came back applicable")
	}
}

func TestSQLiteStorage_SaveValidationRunDefaultsTimestamp(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	run := &model.ValidationRun{Lottery: "pb", Report: testReport(100)}
	if err := store.SaveValidationRun(context.Background(), run); err != nil {
		t.Fatalf("SaveValidationRun() error = %v", err)
	}
	if run.RunAt.IsZero() {
		t.Error("RunAt not populated on save")
	}
}

func TestSQLiteStorage_GetLatestValidationRunPicksNewest(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, draws := range []int{100, 110, 120} {
		run := &model.ValidationRun{
			Lottery: "l4l",
			RunAt:   base.Add(time.Duration(i) * time.Hour),
			Report:  testReport(draws),
		}
		if err := store.SaveValidationRun(ctx, run); err != nil {
			t.Fatalf("SaveValidationRun() error = %v", err)
		}
	}

	// Another lottery's run must not leak into the result.
	other := &model.ValidationRun{
		Lottery: "pb",
		RunAt:   base.Add(24 * time.Hour),
		Report:  testReport(999),
	}
	if err := store.SaveValidationRun(ctx, other); err != nil {
		t.Fatalf("SaveValidationRun() error = %v", err)
	}

	got, err := store.GetLatestValidationRun(ctx, "l4l")
	if err != nil {
		t.Fatalf("GetLatestValidationRun() error = %v", err)
	}
	if got.Report.Draws != 120 {
		t.Errorf("latest run has %d draws, want 120", got.Report.Draws)
	}
}

func TestSQLiteStorage_GetLatestValidationRunBreaksTiesByID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, draws := range []int{100, 200} {
		run := &model.ValidationRun{Lottery: "l4l", RunAt: at, Report: testReport(draws)}
		if err := store.SaveValidationRun(ctx, run); err != nil {
			t.Fatalf("SaveValidationRun() error = %v", err)
		}
	}

	got, err := store.GetLatestValidationRun(ctx, "l4l")
	if err != nil {
		t.Fatalf("GetLatestValidationRun() error = %v", err)
	}
	if got.Report.Draws != 200 {
		t.Errorf("tie broke to %d draws, want the later insert (200)", got.Report.Draws)
	}
}

func TestSQLiteStorage_GetLatestValidationRunNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetLatestValidationRun(context.Background(), "l4l")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetLatestValidationRun() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStorage_SaveValidationRunValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveValidationRun(ctx, nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("SaveValidationRun(nil) error = %v, want ErrNilParameter", err)
	}
	run := &model.ValidationRun{Report: testReport(100)}
	if err := store.SaveValidationRun(ctx, run); !errors.Is(err, ErrEmptyString) {
		t.Errorf("SaveValidationRun() without lottery error = %v, want ErrEmptyString", err)
	}
}
