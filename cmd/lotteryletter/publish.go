package main

import (
	"context"
	"fmt"

	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/publish"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Deliver the rendered newsletter to the configured channels",
		Long: `Publish the most recently generated newsletter. Channels are opt-in
per run: one email to the configured recipient list, the Substack
import address, a patron-only Patreon post, and an SFTP upload to the
website. Unconfigured channels report an error without blocking the
others.`,
		RunE: runPublish,
	}

	cmd.Flags().Bool("email", false, "send one email to the configured recipients")
	cmd.Flags().Bool("substack", false, "forward to the Substack import address")
	cmd.Flags().Bool("patreon", false, "create a patron-only post")
	cmd.Flags().Bool("sftp", false, "upload to the website over SFTP")
	cmd.Flags().Bool("all", false, "publish to every channel")
	cmd.Flags().Bool("dry-run", false, "show what would be delivered without sending")

	return cmd
}

func runPublish(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetBool("email")
	substack, _ := cmd.Flags().GetBool("substack")
	patreon, _ := cmd.Flags().GetBool("patreon")
	sftp, _ := cmd.Flags().GetBool("sftp")
	all, _ := cmd.Flags().GetBool("all")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	targets := publish.Targets{
		Email:    email || all,
		Substack: substack || all,
		Patreon:  patreon || all,
		SFTP:     sftp || all,
	}
	if !targets.Any() {
		return fmt.Errorf("pick at least one of --email, --substack, --patreon, --sftp, or --all")
	}

	results, err := publishNewsletter(cmd.Context(), targets, dryRun)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", res.Target, res.Err)))
			continue
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %s", res.Target, res.Detail)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d channels failed", failed, len(results))
	}
	return nil
}

// publishNewsletter builds delivery clients for whatever is configured
// and publishes latest.html to the requested targets. Clients are only
// constructed when their settings are present; the publisher reports
// per-target errors for the rest.
func publishNewsletter(ctx context.Context, targets publish.Targets, dryRun bool) ([]publish.Result, error) {
	var sender publish.EmailSender
	if viper.GetString("smtp.username") != "" {
		s, err := publish.NewSender(smtpConfig())
		if err != nil {
			return nil, err
		}
		sender = s
	}

	var poster publish.PostCreator
	if viper.GetString("patreon.access_token") != "" {
		p, err := publish.NewPatreonClient(patreonConfig())
		if err != nil {
			return nil, err
		}
		poster = p
	}

	var uploader publish.FileUploader
	if viper.GetString("sftp.host") != "" {
		u, err := publish.NewUploader(sftpConfig())
		if err != nil {
			return nil, err
		}
		uploader = u
	}

	publisher := publish.NewPublisher(sender, poster, uploader, publish.PublisherConfig{
		OutputDir:      outputDir(),
		Recipients:     viper.GetStringSlice("publish.recipients"),
		SubstackImport: viper.GetString("publish.substack_import"),
		DryRun:         dryRun,
	})
	return publisher.Publish(ctx, targets)
}
