package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/princessupload/audience-newsletter/internal/model"
)

func TestProvenCombosRequireMinOccurrence(t *testing.T) {
	a := NewComboAnalyzer(testProfile(), 3, 2)

	train := model.DrawSequence{
		{Date: day("2026-05-03"), Main: []int{3, 14, 22, 31, 44}, Bonus: 1},
		{Date: day("2026-05-02"), Main: []int{3, 14, 22, 40, 47}, Bonus: 1},
		{Date: day("2026-05-01"), Main: []int{1, 2, 5, 9, 10}, Bonus: 1},
	}

	pool := a.ProvenCombos(train)
	if pool.Len() != 1 {
		t.Fatalf("ProvenCombos() kept %d combos, want 1", pool.Len())
	}
	if got := pool.Combos[0].Combo.Key(); got != "3-14-22" {
		t.Errorf("proven combo = %s, want 3-14-22", got)
	}
	if pool.Combos[0].Count != 2 {
		t.Errorf("proven combo count = %d, want 2", pool.Combos[0].Count)
	}
	if !pool.Contains(model.Combo{3, 14, 22}) {
		t.Error("Contains(3-14-22) = false, want true")
	}
	if pool.Contains(model.Combo{1, 2, 5}) {
		t.Error("Contains(1-2-5) = true, want false")
	}
}

func TestProvenCombosOrdering(t *testing.T) {
	a := NewComboAnalyzer(testProfile(), 3, 2)

	// 1-2-3 recurs three times, 10-20-30 twice.
	train := model.DrawSequence{
		{Date: day("2026-05-05"), Main: []int{1, 2, 3, 40, 47}, Bonus: 1},
		{Date: day("2026-05-04"), Main: []int{1, 2, 3, 41, 46}, Bonus: 1},
		{Date: day("2026-05-03"), Main: []int{1, 2, 3, 42, 45}, Bonus: 1},
		{Date: day("2026-05-02"), Main: []int{10, 20, 30, 43, 48}, Bonus: 1},
		{Date: day("2026-05-01"), Main: []int{10, 20, 30, 44, 7}, Bonus: 1},
	}

	pool := a.ProvenCombos(train)
	if pool.Len() != 2 {
		t.Fatalf("ProvenCombos() kept %d combos, want 2", pool.Len())
	}
	if got := pool.Combos[0].Combo.Key(); got != "1-2-3" {
		t.Errorf("top combo = %s, want 1-2-3", got)
	}
	if pool.Combos[0].Count != 3 || pool.Combos[1].Count != 2 {
		t.Errorf("combo counts = %d, %d; want 3, 2", pool.Combos[0].Count, pool.Combos[1].Count)
	}
}

func TestEvaluateCountsHits(t *testing.T) {
	a := NewComboAnalyzer(testProfile(), 3, 2)
	pool := model.NewComboPool(3, 2, []model.ComboCount{
		{Combo: model.Combo{3, 14, 22}, Count: 2},
		{Combo: model.Combo{5, 6, 7}, Count: 2},
	})

	test := model.DrawSequence{
		{Date: day("2026-05-03"), Main: []int{3, 14, 22, 40, 47}, Bonus: 1},
		{Date: day("2026-05-02"), Main: []int{1, 2, 9, 10, 11}, Bonus: 1},
		{Date: day("2026-05-01"), Main: []int{5, 6, 7, 20, 21}, Bonus: 1},
	}

	eval := a.Evaluate(pool, test)
	if eval.TotalHits != 2 {
		t.Errorf("TotalHits = %d, want 2", eval.TotalHits)
	}
	if eval.DrawsWithHit != 2 {
		t.Errorf("DrawsWithHit = %d, want 2", eval.DrawsWithHit)
	}
	if want := 3 * 10; eval.TotalPossibleCombos != want {
		t.Errorf("TotalPossibleCombos = %d, want %d", eval.TotalPossibleCombos, want)
	}
}

func TestExpectedPerTicket(t *testing.T) {
	a := NewComboAnalyzer(testProfile(), 3, 2)

	// A five-number ticket exposes C(5,3) = 10 triples out of
	// C(48,3) = 17296 possible.
	want := 10.0 * 100.0 / 17296.0
	if got := a.ExpectedPerTicket(100); math.Abs(got-want) > 1e-12 {
		t.Errorf("ExpectedPerTicket(100) = %v, want %v", got, want)
	}
	if got := a.ExpectedPerTicket(0); got != 0 {
		t.Errorf("ExpectedPerTicket(0) = %v, want 0", got)
	}
}

func TestForEachComboEnumerates(t *testing.T) {
	var got []string
	forEachCombo([]int{1, 2, 3, 4}, 2, func(c model.Combo) {
		got = append(got, c.Key())
	})

	want := []string{"1-2", "1-3", "1-4", "2-3", "2-4", "3-4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("combos = %v, want %v", got, want)
	}
}

func TestForEachComboDegenerateSizes(t *testing.T) {
	calls := 0
	forEachCombo([]int{1, 2}, 3, func(model.Combo) { calls++ })
	forEachCombo([]int{1, 2}, 0, func(model.Combo) { calls++ })
	if calls != 0 {
		t.Errorf("visited %d combos for degenerate sizes, want 0", calls)
	}
}

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{5, 3, 10},
		{48, 3, 17296},
		{70, 3, 54740},
		{5, 0, 1},
		{5, 5, 1},
		{3, 5, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := binomial(tt.n, tt.k); got != tt.want {
			t.Errorf("binomial(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}
