package analysis

import (
	"sort"

	"github.com/princessupload/audience-newsletter/internal/model"
)

// ComboAnalyzer finds small number combinations that recur across
// training draws and measures how often they land in held-out draws.
type ComboAnalyzer struct {
	profile       model.LotteryProfile
	comboSize     int
	minOccurrence int
}

// NewComboAnalyzer creates an analyzer for comboSize-number subsets
// that must appear at least minOccurrence times to count as proven.
func NewComboAnalyzer(profile model.LotteryProfile, comboSize, minOccurrence int) *ComboAnalyzer {
	return &ComboAnalyzer{
		profile:       profile,
		comboSize:     comboSize,
		minOccurrence: minOccurrence,
	}
}

// ProvenCombos tallies every comboSize-subset of each training draw's
// main numbers and keeps those seen at least minOccurrence times.
func (a *ComboAnalyzer) ProvenCombos(train model.DrawSequence) model.ComboPool {
	counts := make(map[string]int)
	members := make(map[string]model.Combo)

	for _, d := range train {
		sorted := d.SortedMain()
		forEachCombo(sorted, a.comboSize, func(c model.Combo) {
			key := c.Key()
			if counts[key] == 0 {
				stored := make(model.Combo, len(c))
				copy(stored, c)
				members[key] = stored
			}
			counts[key]++
		})
	}

	proven := make([]model.ComboCount, 0)
	for key, count := range counts {
		if count < a.minOccurrence {
			continue
		}
		proven = append(proven, model.ComboCount{Combo: members[key], Count: count})
	}
	sort.Slice(proven, func(i, j int) bool {
		if proven[i].Count != proven[j].Count {
			return proven[i].Count > proven[j].Count
		}
		return proven[i].Combo.Key() < proven[j].Combo.Key()
	})

	return model.NewComboPool(a.comboSize, a.minOccurrence, proven)
}

// ComboEvaluation is the outcome of checking a proven-combo pool
// against held-out draws.
type ComboEvaluation struct {
	TotalHits           int
	DrawsWithHit        int
	TotalPossibleCombos int
}

// Evaluate counts, for each test draw, how many of its comboSize-
// subsets belong to the proven pool. TotalPossibleCombos is the number
// of subsets checked across all test draws.
func (a *ComboAnalyzer) Evaluate(pool model.ComboPool, test model.DrawSequence) ComboEvaluation {
	perDraw := binomial(a.profile.PickCount, a.comboSize)
	eval := ComboEvaluation{TotalPossibleCombos: len(test) * perDraw}

	for _, d := range test {
		sorted := d.SortedMain()
		hits := 0
		forEachCombo(sorted, a.comboSize, func(c model.Combo) {
			if pool.Contains(c) {
				hits++
			}
		})
		eval.TotalHits += hits
		if hits > 0 {
			eval.DrawsWithHit++
		}
	}
	return eval
}

// ExpectedPerTicket is the number of proven-combo hits a random ticket
// would score: the ticket exposes C(pickCount, comboSize) subsets, and
// each has poolLen in C(mainMax, comboSize) odds of being proven.
func (a *ComboAnalyzer) ExpectedPerTicket(poolLen int) float64 {
	total := binomial(a.profile.MainMax, a.comboSize)
	if total == 0 {
		return 0
	}
	perTicket := binomial(a.profile.PickCount, a.comboSize)
	return float64(perTicket) * float64(poolLen) / float64(total)
}

// forEachCombo visits every size-k ordered subset of nums. nums must
// already be sorted; the visited slice is reused between calls.
func forEachCombo(nums []int, k int, visit func(model.Combo)) {
	if k <= 0 || k > len(nums) {
		return
	}
	combo := make(model.Combo, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			visit(combo)
			return
		}
		for i := start; i <= len(nums)-(k-depth); i++ {
			combo[depth] = nums[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
}

// binomial returns C(n, k).
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
