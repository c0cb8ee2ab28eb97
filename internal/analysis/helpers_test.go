package analysis

import (
	"math/rand"
	"testing"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

// testProfile returns a five-pick lottery with a 48-number main range
// and production-shaped constraint bounds.
func testProfile() model.LotteryProfile {
	return model.LotteryProfile{
		Key:           "l4l",
		Name:          "Lucky for Life",
		MainMax:       48,
		BonusMax:      18,
		PickCount:     5,
		PoolSize:      8,
		BonusPoolSize: 5,
		HotWindow:     20,
		HotPoolSize:   10,
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
	}
}

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// randomDraws returns n valid draws for the profile, newest first, one
// day apart, from a fixed seed.
func randomDraws(tb testing.TB, n int, profile model.LotteryProfile) model.DrawSequence {
	tb.Helper()
	rng := rand.New(rand.NewSource(1))
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seq := make(model.DrawSequence, n)
	for i := range seq {
		perm := rng.Perm(profile.MainMax)
		main := make([]int, profile.PickCount)
		for j := range main {
			main[j] = perm[j] + 1
		}
		seq[i] = model.Draw{
			Date:  base.AddDate(0, 0, -i),
			Main:  main,
			Bonus: rng.Intn(profile.BonusMax) + 1,
		}
	}
	return seq
}

// fixedDraws returns n draws sharing the same numbers, newest first,
// one day apart.
func fixedDraws(n int, main []int, bonus int) model.DrawSequence {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seq := make(model.DrawSequence, n)
	for i := range seq {
		m := make([]int, len(main))
		copy(m, main)
		seq[i] = model.Draw{
			Date:  base.AddDate(0, 0, -i),
			Main:  m,
			Bonus: bonus,
		}
	}
	return seq
}
