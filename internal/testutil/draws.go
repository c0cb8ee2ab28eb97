package testutil

import (
	"math/rand"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

// drawBase anchors generated histories so test assertions on dates
// stay stable.
var drawBase = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

// RandomDraws builds a deterministic newest-first history of count
// legal draws for the profile, one per day ending at a fixed date.
func RandomDraws(profile *model.LotteryProfile, count int) model.DrawSequence {
	rng := rand.New(rand.NewSource(1))

	draws := make(model.DrawSequence, count)
	for i := range draws {
		perm := rng.Perm(profile.MainMax)
		main := make([]int, profile.PickCount)
		for j := range main {
			main[j] = perm[j] + 1
		}
		draws[i] = model.Draw{
			Date:  drawBase.AddDate(0, 0, -i),
			Main:  main,
			Bonus: rng.Intn(profile.BonusMax) + 1,
		}
	}
	return draws
}

// FixedDraws builds a newest-first history where every draw has the
// same numbers, handy for asserting exact pool contents.
func FixedDraws(count int, main []int, bonus int) model.DrawSequence {
	draws := make(model.DrawSequence, count)
	for i := range draws {
		nums := make([]int, len(main))
		copy(nums, main)
		draws[i] = model.Draw{
			Date:  drawBase.AddDate(0, 0, -i),
			Main:  nums,
			Bonus: bonus,
		}
	}
	return draws
}
