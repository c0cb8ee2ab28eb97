package fetch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// iowaPrefixes maps lottery keys to the element id prefix the Iowa
// Lottery uses on its results pages, e.g. lblPBN1..lblPBN5 for the
// Powerball main numbers.
var iowaPrefixes = map[string]string{
	"la": "lblLA",
	"pb": "lblPB",
	"mm": "lblMM",
}

// parseIowaDraw scrapes a draw from an Iowa Lottery results page. The
// patterns depend on the per-lottery id prefix, so they are built here
// rather than held as package vars.
func parseIowaDraw(lottery, content string) (model.Draw, error) {
	prefix, ok := iowaPrefixes[lottery]
	if !ok {
		return model.Draw{}, fmt.Errorf("%w: iowa lottery page does not carry %q", common.ErrInvalidConfig, lottery)
	}

	main := make([]int, 0, 5)
	for i := 1; i <= 5; i++ {
		pattern := regexp.MustCompile(fmt.Sprintf(`id="%sN%d"[^>]*>(\d+)<`, prefix, i))
		m := pattern.FindStringSubmatch(content)
		if m == nil {
			return model.Draw{}, fmt.Errorf("%w: ball %d missing from page", common.ErrNoDrawsFound, i)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad ball %d: %w", i, err)
		}
		main = append(main, n)
	}

	bonusPattern := regexp.MustCompile(fmt.Sprintf(`id="%sPower"[^>]*>(\d+)<`, prefix))
	bm := bonusPattern.FindStringSubmatch(content)
	if bm == nil {
		return model.Draw{}, fmt.Errorf("%w: bonus ball missing from page", common.ErrNoDrawsFound)
	}
	bonus, err := strconv.Atoi(bm[1])
	if err != nil {
		return model.Draw{}, fmt.Errorf("bad bonus ball: %w", err)
	}

	datePattern := regexp.MustCompile(fmt.Sprintf(`id="%sDate"[^>]*>([^<]+)<`, prefix))
	dm := datePattern.FindStringSubmatch(content)
	if dm == nil {
		return model.Draw{}, fmt.Errorf("%w: draw date missing from page", common.ErrNoDrawsFound)
	}
	// The date is the dedupe key, so a guessed date is worse than a
	// failed fetch.
	date, err := time.Parse(sourceDateLayout, strings.TrimSpace(dm[1]))
	if err != nil {
		return model.Draw{}, fmt.Errorf("failed to parse draw date %q: %w", dm[1], err)
	}

	return model.Draw{Date: date, Main: main, Bonus: bonus}, nil
}
