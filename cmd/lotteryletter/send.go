package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/newsletter"
	"github.com/princessupload/audience-newsletter/internal/publish"
	"github.com/spf13/cobra"
)

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email the newsletter to every active subscriber",
		Long: `Send the most recently generated newsletter to each active subscriber
as an individual email with a one-click unsubscribe link. The local
subscriber table is merged with the website signup list when one is
configured.`,
		RunE: runSend,
	}

	return cmd
}

func runSend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	htmlPath := filepath.Join(outputDir(), newsletter.LatestFile)
	page, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("no newsletter at %s (run 'lotteryletter generate' first): %w", htmlPath, err)
	}

	sender, err := publish.NewSender(smtpConfig())
	if err != nil {
		return err
	}

	campaign := publish.NewCampaign(sender, store, campaignConfig())
	stats, err := campaign.Send(ctx, string(page))
	if err != nil {
		return err
	}

	line := fmt.Sprintf("sent %d of %d in %s", stats.Sent, stats.Total, stats.Duration.Round(time.Millisecond))
	if stats.Failed > 0 || stats.Skipped > 0 {
		line += fmt.Sprintf(" (%d failed, %d skipped)", stats.Failed, stats.Skipped)
	}
	fmt.Println(cli.FormatSuccess(line))
	return nil
}
