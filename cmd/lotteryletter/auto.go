package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/newsletter"
	"github.com/princessupload/audience-newsletter/internal/publish"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultSchedule runs after the nightly drawings, Central Time.
const defaultSchedule = "30 22 * * *"

func autoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Run the nightly update-generate-publish pipeline on a schedule",
		Long: `Keep running and execute the full pipeline on a cron schedule: fetch
the latest draws and jackpots, regenerate the newsletter, and publish
it to the channels in auto.targets (default: sftp). The schedule is
read from auto.schedule in standard cron syntax and evaluated in
Central Time, where every covered lottery draws.`,
		RunE: runAuto,
	}

	cmd.Flags().Bool("once", false, "run the pipeline immediately and exit")

	return cmd
}

func runAuto(cmd *cobra.Command, _ []string) error {
	once, _ := cmd.Flags().GetBool("once")

	targets, err := targetsFromNames(viper.GetStringSlice("auto.targets"))
	if err != nil {
		return err
	}
	if !targets.Any() {
		targets = publish.Targets{SFTP: true}
	}

	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context())

	if once {
		return runPipeline(ctx, targets)
	}

	spec := viper.GetString("auto.schedule")
	if spec == "" {
		spec = defaultSchedule
	}

	scheduler := cron.New(cron.WithLocation(newsletter.Central()))
	id, err := scheduler.AddFunc(spec, func() {
		if err := runPipeline(ctx, targets); err != nil {
			slog.Error("pipeline run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid auto.schedule %q: %w", spec, err)
	}

	scheduler.Start()
	slog.Info("scheduler started", "schedule", spec, "next_run", scheduler.Entry(id).Next)
	fmt.Println(cli.FormatInfo(fmt.Sprintf("next run %s", scheduler.Entry(id).Next.Format("Mon Jan 2 3:04 PM MST"))))

	<-ctx.Done()

	// Let a mid-flight pipeline finish before exiting.
	<-scheduler.Stop().Done()
	fmt.Println(cli.FormatInfo("scheduler stopped"))
	return nil
}

// runPipeline executes one full cycle: update, generate, publish. A
// failed update aborts the cycle so a stale newsletter is never
// published as fresh.
func runPipeline(ctx context.Context, targets publish.Targets) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := selectedProfiles("")
	if err != nil {
		return err
	}

	results, _ := refreshData(ctx, store, profiles)
	updated := 0
	for _, res := range results {
		if res.Err != nil {
			slog.Warn("draw update failed", "lottery", res.Lottery, "error", res.Err)
			continue
		}
		updated++
	}
	if updated == 0 {
		return fmt.Errorf("draw update failed for every lottery")
	}

	out, err := renderNewsletter(ctx, store)
	if err != nil {
		return err
	}
	slog.Info("newsletter generated", "file", out.Newsletter)

	published, err := publishNewsletter(ctx, targets, false)
	if err != nil {
		return err
	}
	for _, res := range published {
		if res.Err != nil {
			slog.Error("publish failed", "target", res.Target, "error", res.Err)
			continue
		}
		slog.Info("published", "target", res.Target, "detail", res.Detail)
	}
	return nil
}

// targetsFromNames parses the auto.targets config list.
func targetsFromNames(names []string) (publish.Targets, error) {
	var targets publish.Targets
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "email":
			targets.Email = true
		case "substack":
			targets.Substack = true
		case "patreon":
			targets.Patreon = true
		case "sftp":
			targets.SFTP = true
		case "all":
			targets = publish.Targets{Email: true, Substack: true, Patreon: true, SFTP: true}
		case "":
		default:
			return publish.Targets{}, fmt.Errorf("unknown publish target %q (email, substack, patreon, sftp, all)", name)
		}
	}
	return targets, nil
}
