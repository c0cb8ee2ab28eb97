package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// jackpotPatterns extracts the advertised amount per scraped lottery.
// CT's Powerball feed writes "Jackpot: $238 Million"; the Mega Millions
// CMS page carries a bare "$129 Million".
var jackpotPatterns = map[string]*regexp.Regexp{
	"pb": regexp.MustCompile(`(?i)Jackpot[:\s]*\$?([\d,.]+)\s*(Million|Billion)?`),
	"mm": regexp.MustCompile(`(?i)\$?([\d,.]+)\s*(Million|Billion)`),
}

// UpdateJackpots refreshes the advertised jackpot for every lottery
// and persists what it finds. A failed scrape is logged and skipped so
// the previously stored value survives.
func (u *Updater) UpdateJackpots(ctx context.Context) ([]model.Jackpot, error) {
	keys := make([]string, 0, len(u.jackpots))
	for key := range u.jackpots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var saved []model.Jackpot
	for _, key := range keys {
		src := u.jackpots[key]
		jackpot, err := u.fetchJackpot(ctx, key, src)
		if err != nil {
			slog.Warn("failed to update jackpot",
				"lottery", key,
				"source", src.Name,
				"error", err)
			continue
		}

		if err := u.storage.SaveJackpot(ctx, &jackpot); err != nil {
			return saved, fmt.Errorf("failed to save %s jackpot: %w", key, err)
		}
		saved = append(saved, jackpot)

		slog.Info("updated jackpot",
			"lottery", key,
			"amount", jackpot.Amount,
			"cash_value", jackpot.CashValue)
	}
	return saved, nil
}

func (u *Updater) fetchJackpot(ctx context.Context, lottery string, src config.JackpotSource) (model.Jackpot, error) {
	if !src.Scraped() {
		return model.Jackpot{Lottery: lottery, Amount: src.Amount, CashValue: src.CashValue}, nil
	}

	content, err := u.client.Get(ctx, src.URL)
	if err != nil {
		return model.Jackpot{}, err
	}

	pattern, ok := jackpotPatterns[lottery]
	if !ok {
		return model.Jackpot{}, fmt.Errorf("%w: no jackpot pattern for %s", common.ErrMissingConfig, lottery)
	}

	amount, cash, err := parseJackpot(pattern, content)
	if err != nil {
		return model.Jackpot{}, err
	}
	return model.Jackpot{Lottery: lottery, Amount: amount, CashValue: cash}, nil
}

// parseJackpot extracts the advertised amount; the cash value is
// approximated at half of it. A missing Million/Billion suffix means
// millions.
func parseJackpot(pattern *regexp.Regexp, content string) (amount, cash int64, err error) {
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return 0, 0, fmt.Errorf("no jackpot amount on page")
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad jackpot amount %q: %w", m[1], err)
	}

	multiplier := 1_000_000.0
	if strings.EqualFold(m[2], "Billion") {
		multiplier = 1_000_000_000.0
	}

	return int64(value * multiplier), int64(value * multiplier * 0.5), nil
}
