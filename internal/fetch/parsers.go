package fetch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// ParseDraw extracts the most recent draw from a source payload. Ball
// markup carries no date, so those draws come back with a zero Date for
// the caller to stamp from the lottery's schedule.
func ParseDraw(kind config.SourceKind, lottery, content string) (model.Draw, error) {
	switch kind {
	case config.SourceRSS:
		return parseRSSDraw(content)
	case config.SourceIowaHTML:
		return parseIowaDraw(lottery, content)
	case config.SourceCSV:
		return parseNYCSVDraw(content)
	case config.SourceBallHTML:
		return parseBallDraw(content)
	default:
		return model.Draw{}, fmt.Errorf("%w: unknown source kind %q", common.ErrInvalidConfig, kind)
	}
}

// parseNumberList splits a whitespace-separated run of numbers like
// "03 24 32 39 41".
func parseNumberList(s string) ([]int, error) {
	fields := strings.Fields(s)
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", f, err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
