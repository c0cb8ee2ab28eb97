package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/princessupload/audience-newsletter/internal/analysis"
	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Walk-forward validation of every prediction method",
		Long: `Replay history draw by draw: train each prediction method on the
draws before a cutoff, test it on the draws after, and compare against
a random-pick baseline. Results are stored so accuracy can be tracked
across runs.`,
		RunE: runValidate,
	}

	cmd.Flags().String("lottery", "", "validate a single lottery (l4l, la, pb, mm)")
	cmd.Flags().Float64("train-ratio", 0, "override the train/test split (0 < ratio < 1)")
	cmd.Flags().Bool("store", true, "persist the run for trend tracking")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	only, _ := cmd.Flags().GetString("lottery")
	trainRatio, _ := cmd.Flags().GetFloat64("train-ratio")
	persist, _ := cmd.Flags().GetBool("store")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := selectedProfiles(only)
	if err != nil {
		return err
	}

	cfg := analysis.DefaultConfig()
	if trainRatio != 0 {
		if trainRatio <= 0 || trainRatio >= 1 {
			return fmt.Errorf("train-ratio must be between 0 and 1, got %v", trainRatio)
		}
		cfg.TrainRatio = trainRatio
	}
	aggregator := analysis.NewAggregatorWithConfig(profiles, cfg)

	bar := progressbar.NewOptions(len(profiles),
		progressbar.OptionSetDescription("validating"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	type validated struct {
		previous *model.ValidationRun
		profile  model.LotteryProfile
		report   model.LotteryReport
	}
	results := make([]validated, 0, len(profiles))
	reports := make([]model.LotteryReport, 0, len(profiles))

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		bar.Describe("validating " + profile.Name)

		draws, err := store.GetDraws(ctx, profile.Key, service.DrawFilter{})
		if err != nil {
			return fmt.Errorf("failed to load %s draws: %w", profile.Key, err)
		}

		report, err := aggregator.Analyze(profile, draws)
		if err != nil {
			_ = bar.Add(1)
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: %v", profile.Key, err)))
			continue
		}

		previous, err := store.GetLatestValidationRun(ctx, profile.Key)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to load previous run for %s: %w", profile.Key, err)
		}

		if persist {
			run := &model.ValidationRun{
				RunAt:   time.Now().UTC(),
				Lottery: profile.Key,
				Report:  report,
			}
			if err := store.SaveValidationRun(ctx, run); err != nil {
				return fmt.Errorf("failed to store %s validation run: %w", profile.Key, err)
			}
		}

		results = append(results, validated{previous: previous, profile: profile, report: report})
		reports = append(reports, report)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	for _, res := range results {
		fmt.Println(cli.FormatTitle(res.profile.Name))
		fmt.Println(cli.ValidationView(res.report))
		if res.previous != nil {
			fmt.Println(cli.FormatInfo(fmt.Sprintf("position accuracy %.1f%%, was %.1f%% on %s",
				res.report.Backtest.PositionFrequency.Accuracy,
				res.previous.Report.Backtest.PositionFrequency.Accuracy,
				res.previous.RunAt.Format(model.DateLayout))))
		}
	}

	if len(reports) > 1 {
		fmt.Println(cli.FormatTitle("Pattern strength ranking"))
		fmt.Println(cli.ComparisonView(aggregator.Comparison(reports)))
	}

	if len(reports) == 0 {
		return fmt.Errorf("no lotteries could be validated; run 'lotteryletter update' or 'import' first")
	}
	return nil
}
