package analysis

import (
	"github.com/princessupload/audience-newsletter/internal/model"
)

// Filter evaluates tickets against a lottery's structural constraints:
// sum range, decade spread, consecutive pairs, odd/even balance, and
// high/low balance.
type Filter struct {
	spec model.ConstraintSpec
}

// NewFilter creates a filter for one lottery's constraint spec.
func NewFilter(spec model.ConstraintSpec) *Filter {
	return &Filter{spec: spec}
}

// Check measures a ticket against every rule. Passed is true only when
// all five rules hold.
func (f *Filter) Check(main []int) model.ConstraintCheck {
	sorted := make([]int, len(main))
	copy(sorted, main)
	insertionSort(sorted)

	var check model.ConstraintCheck
	decades := make(map[int]bool, len(sorted))
	for i, n := range sorted {
		check.Sum += n
		decades[n/10] = true
		if i > 0 && n-sorted[i-1] == 1 {
			check.ConsecutivePairs++
		}
		if n%2 == 1 {
			check.OddCount++
		}
		if n >= f.spec.HighThreshold {
			check.HighCount++
		}
	}
	check.DecadeCount = len(decades)

	check.SumOK = check.Sum >= f.spec.SumMin && check.Sum <= f.spec.SumMax
	check.DecadesOK = check.DecadeCount >= f.spec.MinDecades
	check.ConsecutiveOK = check.ConsecutivePairs <= f.spec.MaxConsecutive
	check.OddOK = check.OddCount >= f.spec.OddMin && check.OddCount <= f.spec.OddMax
	check.HighOK = check.HighCount >= f.spec.HighMin && check.HighCount <= f.spec.HighMax
	check.Passed = check.SumOK && check.DecadesOK && check.ConsecutiveOK && check.OddOK && check.HighOK

	return check
}

// PassRate returns the fraction of draws whose main numbers satisfy
// every constraint, as a percentage.
func (f *Filter) PassRate(seq model.DrawSequence) (passed int, rate float64) {
	if len(seq) == 0 {
		return 0, 0
	}
	for _, d := range seq {
		if f.Check(d.Main).Passed {
			passed++
		}
	}
	return passed, float64(passed) / float64(len(seq)) * 100
}

// insertionSort sorts small slices in place without an allocation.
func insertionSort(nums []int) {
	for i := 1; i < len(nums); i++ {
		for j := i; j > 0 && nums[j] < nums[j-1]; j-- {
			nums[j], nums[j-1] = nums[j-1], nums[j]
		}
	}
}
