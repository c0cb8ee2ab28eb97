// Package config owns the built-in lottery profiles, data-source
// definitions, tax tables, and filesystem defaults. Components receive
// these as explicit values; nothing here is mutated at runtime.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// DefaultProfiles returns the configuration for the four tracked
// lotteries: published game rules plus the tuning that survived
// walk-forward validation (windows, constraint ranges, strategies).
func DefaultProfiles() []model.LotteryProfile {
	return []model.LotteryProfile{
		{
			Key:          "l4l",
			Name:         "Lucky for Life",
			Emoji:        "🍀",
			BonusName:    "Lucky Ball",
			StrategyDesc: "Pick once, play FOREVER",
			GrandPrize:   "$7K/Week for Life",
			Color:        "#ff47bb",
			Strategy:     model.StrategyHold,
			BestMethods: []string{
				"Position Frequency (40-44% stability)",
				"Proven 3-Combos",
				"Constraint Filter",
			},
			Schedule: model.DrawSchedule{Text: "Daily", Hour: 21, Minute: 38},
			Constraints: model.ConstraintSpec{
				SumMin:         65,
				SumMax:         175,
				MinDecades:     3,
				MaxConsecutive: 1,
				OddMin:         2,
				OddMax:         3,
				HighMin:        2,
				HighMax:        3,
				HighThreshold:  25,
			},
			MainMax:          48,
			BonusMax:         18,
			PickCount:        5,
			Window:           400,
			PoolSize:         8,
			BonusPoolSize:    5,
			HotWindow:        20,
			HotPoolSize:      10,
			FixedCash:        5_750_000,
			PatternStability: 68.9,
		},
		{
			Key:          "la",
			Name:         "Lotto America",
			Emoji:        "⭐",
			BonusName:    "Star Ball",
			StrategyDesc: "Pick once, play FOREVER",
			Color:        "#7DD3FC",
			Strategy:     model.StrategyHold,
			BestMethods: []string{
				"Hot-10 Method (2.6x improvement)",
				"Position Frequency",
				"Constraint Filter",
			},
			Schedule: model.DrawSchedule{
				Text:     "Mon/Wed/Sat",
				Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
				Hour:     22,
			},
			Constraints: model.ConstraintSpec{
				SumMin:         71,
				SumMax:         188,
				MinDecades:     2,
				MaxConsecutive: 1,
				OddMin:         2,
				OddMax:         3,
				HighMin:        2,
				HighMax:        3,
				HighThreshold:  27,
			},
			MainMax:          52,
			BonusMax:         10,
			PickCount:        5,
			Window:           150,
			PoolSize:         8,
			BonusPoolSize:    5,
			HotWindow:        20,
			HotPoolSize:      10,
			PatternStability: 60.0,
		},
		{
			Key:          "pb",
			Name:         "Powerball",
			Emoji:        "🔴",
			BonusName:    "Powerball",
			StrategyDesc: "Pick once, review every ~2 years",
			Color:        "#E31B23",
			Strategy:     model.StrategyHoldReview,
			BestMethods: []string{
				"Position+Momentum (1.21x)",
				"Hot Pair Anchor (1.20x)",
				"Mod-512 Filter (1.20x)",
			},
			Schedule: model.DrawSchedule{
				Text:     "Mon/Wed/Sat",
				Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
				Hour:     21,
				Minute:   59,
			},
			Constraints: model.ConstraintSpec{
				SumMin:         80,
				SumMax:         220,
				MinDecades:     3,
				MaxConsecutive: 1,
				OddMin:         2,
				OddMax:         3,
				HighMin:        2,
				HighMax:        3,
				HighThreshold:  35,
			},
			MainMax:          69,
			BonusMax:         26,
			PickCount:        5,
			Window:           100,
			PoolSize:         8,
			BonusPoolSize:    5,
			HotWindow:        20,
			HotPoolSize:      10,
			PatternStability: 46.7,
		},
		{
			Key:          "mm",
			Name:         "Mega Millions",
			Emoji:        "💰",
			BonusName:    "Mega Ball",
			StrategyDesc: "Pick fresh EACH draw",
			Color:        "#C0C0C0",
			Strategy:     model.StrategyNextDraw,
			BestMethods: []string{
				"Hot Numbers",
				"Repeat Likelihood (35-48%)",
				"Momentum Analysis",
			},
			Schedule: model.DrawSchedule{
				Text:     "Tue/Fri",
				Weekdays: []time.Weekday{time.Tuesday, time.Friday},
				Hour:     22,
			},
			Constraints: model.ConstraintSpec{
				SumMin:         100,
				SumMax:         220,
				MinDecades:     3,
				MaxConsecutive: 1,
				OddMin:         2,
				OddMax:         3,
				HighMin:        2,
				HighMax:        3,
				HighThreshold:  36,
			},
			MainMax:       70,
			BonusMax:      25,
			PickCount:     5,
			Window:        30,
			PoolSize:      8,
			BonusPoolSize: 5,
			HotWindow:     20,
			HotPoolSize:   10,
		},
	}
}

// Profiles returns the default profiles with any viper overrides
// applied, validated and ready for use.
func Profiles() ([]model.LotteryProfile, error) {
	profiles := DefaultProfiles()
	for i := range profiles {
		applyOverrides(&profiles[i])
		if err := profiles[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
	}
	return profiles, nil
}

// applyOverrides lets the config file tune analysis windows and pool
// sizes per lottery, e.g. lotteries.pb.window: 150.
func applyOverrides(p *model.LotteryProfile) {
	prefix := "lotteries." + p.Key + "."
	if v := viper.GetInt(prefix + "window"); v > 0 {
		p.Window = v
	}
	if v := viper.GetInt(prefix + "pool_size"); v > 0 {
		p.PoolSize = v
	}
	if v := viper.GetInt(prefix + "bonus_pool_size"); v > 0 {
		p.BonusPoolSize = v
	}
	if v := viper.GetInt(prefix + "hot_window"); v > 0 {
		p.HotWindow = v
	}
	if v := viper.GetInt(prefix + "hot_pool_size"); v > 0 {
		p.HotPoolSize = v
	}
}

// ProfileByKey finds one lottery in a profile list.
func ProfileByKey(profiles []model.LotteryProfile, key string) (*model.LotteryProfile, error) {
	for i := range profiles {
		if profiles[i].Key == key {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown lottery %q", common.ErrInvalidConfig, key)
}
