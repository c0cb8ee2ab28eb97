package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/princessupload/audience-newsletter/internal/analysis"
	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/newsletter"
	"github.com/princessupload/audience-newsletter/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the HTML newsletter and embed snippet",
		Long: `Analyze stored draws and write the newsletter files: a dated page,
latest.html, and the compact embed_snippet.html for the website. The
send and publish commands deliver whatever latest.html holds.`,
		RunE: runGenerate,
	}

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out, err := renderNewsletter(ctx, store)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("newsletter written to " + out.Newsletter))
	fmt.Println(cli.FormatInfo("latest copy at " + out.Latest))
	fmt.Println(cli.FormatInfo("embed snippet at " + out.Snippet))
	return nil
}

// renderNewsletter analyzes every lottery with stored history and
// writes the newsletter files. Lotteries that cannot be analyzed are
// skipped with a warning so one empty table never blocks the issue.
func renderNewsletter(ctx context.Context, store service.Storage) (*newsletter.Output, error) {
	profiles, err := config.Profiles()
	if err != nil {
		return nil, err
	}

	histories, err := loadHistories(ctx, store, profiles)
	if err != nil {
		return nil, err
	}

	aggregator := analysis.NewAggregator(profiles)
	outcomes := aggregator.Run(ctx, histories)

	sections := make([]newsletter.Section, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			slog.Warn("skipping lottery", "lottery", outcome.Lottery, "error", outcome.Err)
			continue
		}

		profile, err := config.ProfileByKey(profiles, outcome.Lottery)
		if err != nil {
			return nil, err
		}

		sections = append(sections, newsletter.Section{
			Profile: *profile,
			Report:  outcome.Report,
			Jackpot: jackpotFor(ctx, store, outcome.Lottery),
		})
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("no lotteries could be analyzed; run 'lotteryletter update' or 'import' first")
	}

	renderer, err := newsletter.NewRendererWithConfig(newsletter.Config{
		OutputDir: outputDir(),
		TaxState:  viper.GetString("newsletter.tax_state"),
	})
	if err != nil {
		return nil, err
	}

	return renderer.WriteFiles(sections)
}

// jackpotFor returns the stored jackpot, or nil when none has been
// fetched yet. The renderer omits the jackpot box for nil.
func jackpotFor(ctx context.Context, store service.Storage, lottery string) *model.Jackpot {
	jackpot, err := store.GetJackpot(ctx, lottery)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Warn("failed to load jackpot", "lottery", lottery, "error", err)
		}
		return nil
	}
	return jackpot
}
