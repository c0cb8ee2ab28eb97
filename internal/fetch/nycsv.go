package fetch

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// parseNYCSVDraw reads the newest Mega Millions draw from the NY Open
// Data export: "Draw Date,Winning Numbers,Mega Ball,Multiplier" rows,
// oldest first, with the winning-numbers column holding all six balls
// space-separated.
func parseNYCSVDraw(content string) (model.Draw, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return model.Draw{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return model.Draw{}, fmt.Errorf("%w: CSV has no data rows", common.ErrNoDrawsFound)
	}

	last := records[len(records)-1]
	if len(last) < 2 {
		return model.Draw{}, fmt.Errorf("%w: short CSV record", common.ErrNoDrawsFound)
	}

	date, err := time.Parse(sourceDateLayout, strings.TrimSpace(last[0]))
	if err != nil {
		return model.Draw{}, fmt.Errorf("failed to parse draw date %q: %w", last[0], err)
	}

	nums, err := parseNumberList(last[1])
	if err != nil {
		return model.Draw{}, fmt.Errorf("failed to parse winning numbers %q: %w", last[1], err)
	}
	if len(nums) < 6 {
		return model.Draw{}, fmt.Errorf("%w: expected 6 numbers, got %d", common.ErrNoDrawsFound, len(nums))
	}

	return model.Draw{Date: date, Main: nums[:5], Bonus: nums[5]}, nil
}
