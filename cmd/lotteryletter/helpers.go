package main

import (
	"context"
	"fmt"

	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/publish"
	"github.com/princessupload/audience-newsletter/internal/service"
	"github.com/princessupload/audience-newsletter/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// selectedProfiles returns the configured lottery profiles, narrowed to
// a single key when one is given.
func selectedProfiles(only string) ([]model.LotteryProfile, error) {
	profiles, err := config.Profiles()
	if err != nil {
		return nil, err
	}
	if only == "" {
		return profiles, nil
	}

	profile, err := config.ProfileByKey(profiles, only)
	if err != nil {
		return nil, err
	}
	return []model.LotteryProfile{*profile}, nil
}

// loadHistories reads every selected lottery's stored draws.
func loadHistories(ctx context.Context, store service.Storage, profiles []model.LotteryProfile) (map[string][]model.Draw, error) {
	histories := make(map[string][]model.Draw, len(profiles))
	for _, profile := range profiles {
		draws, err := store.GetDraws(ctx, profile.Key, service.DrawFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to load %s draws: %w", profile.Key, err)
		}
		histories[profile.Key] = draws
	}
	return histories, nil
}

// outputDir is where rendered newsletters land and where delivery
// commands look for them.
func outputDir() string {
	dir := viper.GetString("newsletter.output_dir")
	if dir == "" {
		dir = config.DefaultOutputDir()
	}
	return config.ExpandPath(dir)
}

func smtpConfig() publish.SMTPConfig {
	cfg := publish.DefaultSMTPConfig()
	if host := viper.GetString("smtp.host"); host != "" {
		cfg.Host = host
	}
	if port := viper.GetInt("smtp.port"); port > 0 {
		cfg.Port = port
	}
	cfg.Username = viper.GetString("smtp.username")
	cfg.Password = viper.GetString("smtp.password")
	if from := viper.GetString("smtp.from"); from != "" {
		cfg.From = from
	}
	if name := viper.GetString("smtp.from_name"); name != "" {
		cfg.FromName = name
	}
	return cfg
}

func campaignConfig() publish.CampaignConfig {
	cfg := publish.DefaultCampaignConfig()
	if url := viper.GetString("website.list_url"); url != "" {
		cfg.ListURL = url
	}
	cfg.ListKey = viper.GetString("website.list_key")
	if url := viper.GetString("website.unsubscribe_url"); url != "" {
		cfg.UnsubBase = url
	}
	if secret := viper.GetString("website.unsubscribe_secret"); secret != "" {
		cfg.UnsubSecret = secret
	}
	return cfg
}

func patreonConfig() publish.PatreonConfig {
	return publish.PatreonConfig{
		AccessToken: viper.GetString("patreon.access_token"),
		CampaignID:  viper.GetString("patreon.campaign_id"),
	}
}

func sftpConfig() publish.SFTPConfig {
	return publish.SFTPConfig{
		Host:       viper.GetString("sftp.host"),
		Port:       viper.GetInt("sftp.port"),
		User:       viper.GetString("sftp.user"),
		Password:   viper.GetString("sftp.password"),
		RemoteDirs: viper.GetStringSlice("sftp.remote_dirs"),
		RemoteName: viper.GetString("sftp.remote_name"),
	}
}
