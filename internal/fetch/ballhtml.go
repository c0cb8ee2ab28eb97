package fetch

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// ballPattern matches aggregator markup that renders each drawn number
// in a c-ball element, e.g. <span class="c-ball c-ball--white">12</span>.
var ballPattern = regexp.MustCompile(`c-ball[^>]*>(\d+)<`)

// parseBallDraw reads the newest result from aggregator pages
// (lotto.net, lotteryusa) that list draws newest-first. The first five
// balls are the main numbers and the sixth is the bonus. The markup
// carries no machine-readable date, so Date is left zero for the
// caller to stamp from the lottery's schedule.
func parseBallDraw(content string) (model.Draw, error) {
	matches := ballPattern.FindAllStringSubmatch(content, 6)
	if len(matches) < 6 {
		return model.Draw{}, fmt.Errorf("%w: found %d balls, need 6", common.ErrNoDrawsFound, len(matches))
	}

	nums := make([]int, 0, 6)
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad ball %q: %w", m[1], err)
		}
		nums = append(nums, n)
	}

	return model.Draw{Main: nums[:5], Bonus: nums[5]}, nil
}
