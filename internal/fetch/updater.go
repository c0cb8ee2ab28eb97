package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/princessupload/audience-newsletter/internal/service"
)

// UpdateResult is the outcome of refreshing one lottery's draws.
type UpdateResult struct {
	Err     error
	Draw    *model.Draw
	Lottery string
	Source  string
	Added   bool
}

// Updater pulls the latest draw for each lottery into storage. Every
// lottery has a primary source and a fallback, and one lottery failing
// never stops the others.
type Updater struct {
	client   *Client
	storage  service.Storage
	sources  map[string]config.SourceSet
	jackpots map[string]config.JackpotSource
	location *time.Location
	now      func() time.Time
}

// NewUpdater wires the default sources.
func NewUpdater(client *Client, storage service.Storage) *Updater {
	return NewUpdaterWithSources(client, storage, config.DefaultSources(), config.DefaultJackpotSources())
}

// NewUpdaterWithSources lets callers point the updater at different
// source definitions.
func NewUpdaterWithSources(client *Client, storage service.Storage, sources map[string]config.SourceSet, jackpots map[string]config.JackpotSource) *Updater {
	// All four lotteries broadcast from Central Time. Stamping
	// degrades to UTC when tzdata is absent.
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.UTC
	}

	return &Updater{
		client:   client,
		storage:  storage,
		sources:  sources,
		jackpots: jackpots,
		location: loc,
		now:      time.Now,
	}
}

// UpdateDraws refreshes every profile's history with its newest draw.
func (u *Updater) UpdateDraws(ctx context.Context, profiles []model.LotteryProfile) []UpdateResult {
	results := make([]UpdateResult, 0, len(profiles))
	for i := range profiles {
		results = append(results, u.updateLottery(ctx, &profiles[i]))
	}
	return results
}

func (u *Updater) updateLottery(ctx context.Context, profile *model.LotteryProfile) UpdateResult {
	result := UpdateResult{Lottery: profile.Key}

	set, ok := u.sources[profile.Key]
	if !ok {
		result.Err = fmt.Errorf("%w: no sources for %s", common.ErrMissingConfig, profile.Key)
		return result
	}

	draw, sourceName, err := u.fetchDraw(ctx, profile, set)
	if err != nil {
		result.Err = err
		return result
	}
	result.Source = sourceName
	result.Draw = &draw

	// SaveDraws dedupes on (lottery, date); a zero added count means
	// this draw was already on file.
	added, err := u.storage.SaveDraws(ctx, profile.Key, []model.Draw{draw})
	if err != nil {
		result.Err = fmt.Errorf("failed to save draw: %w", err)
		return result
	}
	result.Added = added > 0

	slog.Info("updated lottery",
		"lottery", profile.Key,
		"source", sourceName,
		"date", draw.Date.Format(model.DateLayout),
		"added", result.Added)
	return result
}

// fetchDraw tries the primary source and falls back to the secondary.
func (u *Updater) fetchDraw(ctx context.Context, profile *model.LotteryProfile, set config.SourceSet) (model.Draw, string, error) {
	draw, primaryErr := u.fetchFrom(ctx, profile, set.Primary)
	if primaryErr == nil {
		return draw, set.Primary.Name, nil
	}
	slog.Warn("primary source failed, trying fallback",
		"lottery", profile.Key,
		"source", set.Primary.Name,
		"error", primaryErr)

	draw, secondaryErr := u.fetchFrom(ctx, profile, set.Secondary)
	if secondaryErr != nil {
		return model.Draw{}, "", fmt.Errorf("both sources failed: %s: %v; %s: %w",
			set.Primary.Name, primaryErr, set.Secondary.Name, secondaryErr)
	}
	return draw, set.Secondary.Name, nil
}

// fetchFrom fetches and parses one source, then checks the draw
// against the game's ranges so a misparsed page triggers the fallback
// instead of polluting the history.
func (u *Updater) fetchFrom(ctx context.Context, profile *model.LotteryProfile, src config.Source) (model.Draw, error) {
	content, err := u.client.Get(ctx, src.URL)
	if err != nil {
		return model.Draw{}, err
	}

	draw, err := ParseDraw(src.Kind, profile.Key, content)
	if err != nil {
		return model.Draw{}, err
	}

	if draw.Date.IsZero() {
		last := profile.Schedule.LastDrawAt(u.now().In(u.location))
		draw.Date = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	}

	if len(draw.Main) != profile.PickCount {
		return model.Draw{}, fmt.Errorf("%s returned %d main numbers, want %d", src.Name, len(draw.Main), profile.PickCount)
	}
	for _, n := range draw.Main {
		if n < 1 || n > profile.MainMax {
			return model.Draw{}, fmt.Errorf("%s returned out-of-range number %d", src.Name, n)
		}
	}
	if draw.Bonus < 1 || draw.Bonus > profile.BonusMax {
		return model.Draw{}, fmt.Errorf("%s returned out-of-range bonus %d", src.Name, draw.Bonus)
	}

	return draw, nil
}
