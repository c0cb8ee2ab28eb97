package main

import (
	"encoding/json"
	"fmt"

	"github.com/princessupload/audience-newsletter/internal/analysis"
	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build number pools from stored draw history",
		Long: `Analyze stored draws and print each lottery's pattern report: the
per-position number pools, bonus pool, hot numbers, proven combos, and
the walk-forward validation behind them. Nothing is persisted; run
'validate' to record a run for trend tracking.`,
		RunE: runAnalyze,
	}

	cmd.Flags().String("lottery", "", "analyze a single lottery (l4l, la, pb, mm)")
	cmd.Flags().Bool("json", false, "emit the full reports as JSON")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	only, _ := cmd.Flags().GetString("lottery")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := selectedProfiles(only)
	if err != nil {
		return err
	}

	histories, err := loadHistories(ctx, store, profiles)
	if err != nil {
		return err
	}

	aggregator := analysis.NewAggregator(profiles)
	outcomes := aggregator.Run(ctx, histories)

	reports := make([]model.LotteryReport, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			reports = append(reports, outcome.Report)
		}
	}
	comparison := aggregator.Comparison(reports)

	if asJSON {
		return printJSON(reports, comparison, outcomes)
	}

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: %v", outcome.Lottery, outcome.Err)))
			continue
		}

		profile, err := config.ProfileByKey(profiles, outcome.Lottery)
		if err != nil {
			return err
		}
		fmt.Println(cli.ReportView(*profile, outcome.Report))
	}

	if len(reports) > 1 {
		fmt.Println(cli.FormatTitle("Pattern strength ranking"))
		fmt.Println(cli.ComparisonView(comparison))
	}

	if len(reports) == 0 {
		return fmt.Errorf("no lotteries could be analyzed; run 'lotteryletter update' or 'import' first")
	}
	return nil
}

func printJSON(reports []model.LotteryReport, comparison []analysis.ComparisonRow, outcomes []analysis.LotteryOutcome) error {
	payload := struct {
		Reports    []model.LotteryReport    `json:"reports"`
		Comparison []analysis.ComparisonRow `json:"comparison"`
		Errors     map[string]string        `json:"errors,omitempty"`
	}{Reports: reports, Comparison: comparison}

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			if payload.Errors == nil {
				payload.Errors = make(map[string]string)
			}
			payload.Errors[outcome.Lottery] = outcome.Err.Error()
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
