package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/fetch"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/newsletter"
	"github.com/princessupload/audience-newsletter/internal/service"
	"github.com/spf13/cobra"
)

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch the latest draws and jackpots",
		Long: `Pull the most recent draw for every lottery from the public result
pages and refresh the advertised jackpots. Each lottery has a primary
and a backup source; draws already on file are skipped.`,
		RunE: runUpdate,
	}

	cmd.Flags().String("lottery", "", "update a single lottery (l4l, la, pb, mm)")

	return cmd
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	only, _ := cmd.Flags().GetString("lottery")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := selectedProfiles(only)
	if err != nil {
		return err
	}

	results, jackpots := refreshData(ctx, store, profiles)

	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", res.Lottery, res.Err)))
			continue
		}

		status := "already on file"
		if res.Added {
			status = "new draw"
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %s %s via %s",
			res.Lottery, status, res.Draw.Date.Format(model.DateLayout), res.Source)))
	}

	for _, jackpot := range jackpots {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("%s jackpot: %s (cash %s)",
			jackpot.Lottery, newsletter.FormatMoney(jackpot.Amount), newsletter.FormatMoney(jackpot.CashValue))))
	}

	if failures == len(results) && failures > 0 {
		return fmt.Errorf("every lottery update failed")
	}
	return nil
}

// refreshData pulls draws and jackpots for the given lotteries. Jackpot
// failures are logged rather than returned; a stale jackpot only ages
// the newsletter header.
func refreshData(ctx context.Context, store service.Storage, profiles []model.LotteryProfile) ([]fetch.UpdateResult, []model.Jackpot) {
	updater := fetch.NewUpdater(fetch.NewClient(), store)

	results := updater.UpdateDraws(ctx, profiles)

	jackpots, err := updater.UpdateJackpots(ctx)
	if err != nil {
		slog.Warn("jackpot refresh incomplete", "error", err)
	}
	return results, jackpots
}
