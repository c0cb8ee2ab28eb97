package newsletter

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, ""},
		{"negative", -5, ""},
		{"small amount", 999, "$999"},
		{"thousands", 750_000, "$750K"},
		{"exact thousand", 1_000, "$1K"},
		{"millions", 5_750_000, "$5.8M"},
		{"round millions", 238_000_000, "$238.0M"},
		{"after tax cash", 4_096_875, "$4.1M"},
		{"exact billion", 1_000_000_000, "$1.00B"},
		{"billions", 1_530_000_000, "$1.53B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(tt.amount); got != tt.want {
				t.Errorf("FormatMoney(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
