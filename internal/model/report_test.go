package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMethodResult_MarshalNotApplicable(t *testing.T) {
	r := MethodResult{Applicable: false}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"not applicable"` {
		t.Errorf("Marshal = %s, want %q", data, "not applicable")
	}
}

func TestMethodResult_MarshalApplicable(t *testing.T) {
	r := MethodResult{
		TrainSize:   800,
		TestSize:    200,
		Hits:        410,
		Total:       1000,
		Accuracy:    0.41,
		Baseline:    0.1667,
		Improvement: 2.46,
		Applicable:  true,
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, key := range []string{`"trainSize":800`, `"accuracy":0.41`, `"improvement":2.46`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Marshal output missing %s: %s", key, data)
		}
	}
}

func TestMethodResult_UnmarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantApplicable bool
		wantHits       int
	}{
		{name: "not applicable string", raw: `"not applicable"`, wantApplicable: false},
		{name: "full object", raw: `{"trainSize":800,"testSize":200,"hits":410,"total":1000,"accuracy":0.41,"baseline":0.1667,"improvement":2.46}`, wantApplicable: true, wantHits: 410},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r MethodResult
			if err := json.Unmarshal([]byte(tt.raw), &r); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if r.Applicable != tt.wantApplicable {
				t.Errorf("Applicable = %v, want %v", r.Applicable, tt.wantApplicable)
			}
			if r.Hits != tt.wantHits {
				t.Errorf("Hits = %d, want %d", r.Hits, tt.wantHits)
			}
		})
	}
}

func TestMethodResult_UnmarshalRejectsUnknownString(t *testing.T) {
	var r MethodResult
	if err := json.Unmarshal([]byte(`"garbage"`), &r); err == nil {
		t.Error("Unmarshal should reject unknown string results")
	}
}

func TestBacktestSummary_MixedApplicability(t *testing.T) {
	s := BacktestSummary{
		PositionFrequency: MethodResult{Accuracy: 0.4, Applicable: true},
		HotNumbers:        MethodResult{Applicable: false},
		RepeatPattern:     RepeatResult{RepeatRate: 0.42, Applicable: true},
		ProvenCombos:      ComboResult{Applicable: false},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"hotNumbers":"not applicable"`) {
		t.Errorf("hotNumbers should serialize as not applicable: %s", out)
	}
	if !strings.Contains(out, `"provenCombos":"not applicable"`) {
		t.Errorf("provenCombos should serialize as not applicable: %s", out)
	}
	if !strings.Contains(out, `"repeatRate":0.42`) {
		t.Errorf("repeatPattern should serialize as an object: %s", out)
	}
}

func TestComboPool_Contains(t *testing.T) {
	pool := NewComboPool(3, 2, []ComboCount{
		{Combo: Combo{3, 14, 22}, Count: 4},
		{Combo: Combo{5, 9, 40}, Count: 2},
	})

	if !pool.Contains(Combo{3, 14, 22}) {
		t.Error("pool should contain 3-14-22")
	}
	if pool.Contains(Combo{1, 2, 3}) {
		t.Error("pool should not contain 1-2-3")
	}
	if pool.Len() != 2 {
		t.Errorf("Len = %d, want 2", pool.Len())
	}
}

func TestRankedPool_Helpers(t *testing.T) {
	pool := RankedPool{{Number: 7, Count: 12}, {Number: 21, Count: 9}, {Number: 3, Count: 9}}

	if !pool.Contains(21) || pool.Contains(8) {
		t.Error("Contains gave wrong membership")
	}
	if got := pool.TotalCount(); got != 30 {
		t.Errorf("TotalCount = %d, want 30", got)
	}
	nums := pool.Numbers()
	if nums[0] != 7 || nums[2] != 3 {
		t.Errorf("Numbers order wrong: %v", nums)
	}
}
