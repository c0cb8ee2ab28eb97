package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Bulk-load historical draw files",
		Long: `Load draw history from JSON exports. Both shapes are accepted: an
object with a "draws" array, or a bare array of draws. Each draw is a
{"date", "main", "bonus"} object with a YYYY-MM-DD date.

The lottery is inferred from the file name (lucky4life_draws.json,
powerball_draws.json, ...) unless --lottery forces one for every file.
Duplicate dates are skipped, so re-importing the same file is safe.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportDraws,
	}

	cmd.Flags().String("lottery", "", "lottery key for every file (l4l, la, pb, mm)")

	return cmd
}

func runImportDraws(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	forced, _ := cmd.Flags().GetString("lottery")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := config.Profiles()
	if err != nil {
		return err
	}

	total := 0
	for _, path := range args {
		lottery := forced
		if lottery == "" {
			lottery = inferLottery(path)
		}
		if lottery == "" {
			return fmt.Errorf("cannot tell which lottery %s belongs to; use --lottery", path)
		}
		if _, err := config.ProfileByKey(profiles, lottery); err != nil {
			return err
		}

		draws, err := readDrawFile(path)
		if err != nil {
			return err
		}

		added, err := store.SaveDraws(ctx, lottery, draws)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		total += added

		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %d draws read, %d new (%s)",
			filepath.Base(path), len(draws), added, lottery)))
	}

	fmt.Println(cli.FormatInfo(fmt.Sprintf("%d new draws imported", total)))
	return nil
}

// readDrawFile parses a draw export, accepting both the wrapped
// {"draws": [...]} shape and a bare array.
func readDrawFile(path string) ([]model.Draw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var wrapped struct {
		Draws []model.Draw `json:"draws"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Draws != nil {
		return wrapped.Draws, nil
	}

	var draws []model.Draw
	if err := json.Unmarshal(data, &draws); err != nil {
		return nil, fmt.Errorf("%s is not a recognized draw export: %w", path, err)
	}
	return draws, nil
}

// inferLottery maps legacy export names to lottery keys.
func inferLottery(path string) string {
	name := strings.ToLower(filepath.Base(path))

	aliases := []struct{ substr, key string }{
		{"lucky4life", "l4l"},
		{"luckyforlife", "l4l"},
		{"lottoamerica", "la"},
		{"powerball", "pb"},
		{"megamillions", "mm"},
	}
	for _, alias := range aliases {
		if strings.Contains(name, alias.substr) {
			return alias.key
		}
	}

	for _, key := range []string{"l4l", "la", "pb", "mm"} {
		if strings.HasPrefix(name, key+"_") || strings.HasPrefix(name, key+".") {
			return key
		}
	}
	return ""
}
