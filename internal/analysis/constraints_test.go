package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/princessupload/audience-newsletter/internal/model"
)

func TestCheckPassingTicket(t *testing.T) {
	f := NewFilter(testProfile().Constraints)

	check := f.Check([]int{3, 14, 22, 31, 44})
	if !check.Passed {
		t.Fatalf("Check() = %+v, want every rule passed", check)
	}
	if check.Sum != 114 {
		t.Errorf("Sum = %d, want 114", check.Sum)
	}
	if check.DecadeCount != 5 {
		t.Errorf("DecadeCount = %d, want 5", check.DecadeCount)
	}
	if check.ConsecutivePairs != 0 {
		t.Errorf("ConsecutivePairs = %d, want 0", check.ConsecutivePairs)
	}
	if check.OddCount != 2 {
		t.Errorf("OddCount = %d, want 2", check.OddCount)
	}
	if check.HighCount != 2 {
		t.Errorf("HighCount = %d, want 2", check.HighCount)
	}
}

func TestCheckSingleRuleViolations(t *testing.T) {
	f := NewFilter(model.ConstraintSpec{
		SumMin:         50,
		SumMax:         150,
		MinDecades:     2,
		MaxConsecutive: 1,
		OddMin:         1,
		OddMax:         4,
		HighMin:        1,
		HighMax:        5,
		HighThreshold:  20,
	})

	tests := []struct {
		name   string
		main   []int
		sumOK  bool
		decOK  bool
		consOK bool
		oddOK  bool
		highOK bool
	}{
		{"sum below minimum", []int{1, 3, 10, 12, 20}, false, true, true, true, true},
		{"too few decades", []int{20, 22, 24, 26, 29}, true, false, true, true, true},
		{"too many consecutive", []int{5, 12, 23, 24, 25}, true, true, false, true, true},
		{"no odd numbers", []int{2, 12, 24, 36, 48}, true, true, true, false, true},
		{"no high numbers", []int{3, 8, 12, 15, 19}, true, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := f.Check(tt.main)
			if check.Passed {
				t.Error("Passed = true, want false")
			}
			if check.SumOK != tt.sumOK {
				t.Errorf("SumOK = %v, want %v", check.SumOK, tt.sumOK)
			}
			if check.DecadesOK != tt.decOK {
				t.Errorf("DecadesOK = %v, want %v", check.DecadesOK, tt.decOK)
			}
			if check.ConsecutiveOK != tt.consOK {
				t.Errorf("ConsecutiveOK = %v, want %v", check.ConsecutiveOK, tt.consOK)
			}
			if check.OddOK != tt.oddOK {
				t.Errorf("OddOK = %v, want %v", check.OddOK, tt.oddOK)
			}
			if check.HighOK != tt.highOK {
				t.Errorf("HighOK = %v, want %v", check.HighOK, tt.highOK)
			}
		})
	}
}

func TestCheckHandlesUnsortedInput(t *testing.T) {
	f := NewFilter(testProfile().Constraints)

	main := []int{44, 3, 31, 14, 22}
	shuffled := f.Check(main)
	sorted := f.Check([]int{3, 14, 22, 31, 44})
	if !reflect.DeepEqual(shuffled, sorted) {
		t.Errorf("Check() varies with input order: %+v vs %+v", shuffled, sorted)
	}
	if !reflect.DeepEqual(main, []int{44, 3, 31, 14, 22}) {
		t.Errorf("Check() mutated its input: %v", main)
	}
}

func TestPassRate(t *testing.T) {
	f := NewFilter(testProfile().Constraints)

	seq := model.DrawSequence{
		{Date: day("2026-05-03"), Main: []int{3, 14, 22, 31, 44}, Bonus: 1},
		{Date: day("2026-05-02"), Main: []int{1, 2, 3, 4, 5}, Bonus: 1},
		{Date: day("2026-05-01"), Main: []int{5, 17, 23, 32, 46}, Bonus: 1},
	}

	passed, rate := f.PassRate(seq)
	if passed != 2 {
		t.Errorf("passed = %d, want 2", passed)
	}
	if math.Abs(rate-66.6667) > 0.01 {
		t.Errorf("rate = %v, want ~66.67", rate)
	}
}

func TestPassRateEmptySequence(t *testing.T) {
	f := NewFilter(testProfile().Constraints)
	if passed, rate := f.PassRate(nil); passed != 0 || rate != 0 {
		t.Errorf("PassRate(nil) = %d, %v; want 0, 0", passed, rate)
	}
}
