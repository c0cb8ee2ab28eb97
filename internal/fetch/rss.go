package fetch

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
)

// sourceDateLayout is the MM/DD/YYYY format every US lottery source
// uses.
const sourceDateLayout = "01/02/2006"

// rssFeed is the skeleton of the CT Lottery results feed; only item
// titles carry data.
type rssFeed struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title string `xml:"title"`
}

// rssTitlePattern matches result titles like
// "Lucky4Life - 01/15/2026 - 03 24 32 39 41 LB:02" and
// "Powerball - 01/15/2026 - 06 24 39 43 51 PB:23".
var rssTitlePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*-\s*([\d\s]+)\s*(?:LB|PB):(\d+)`)

// parseRSSDraw extracts the newest draw from a CT Lottery RSS feed.
// The feed lists items newest-first; the first parseable title wins.
func parseRSSDraw(content string) (model.Draw, error) {
	var feed rssFeed
	if err := xml.Unmarshal([]byte(content), &feed); err != nil {
		return model.Draw{}, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	for _, item := range feed.Items {
		m := rssTitlePattern.FindStringSubmatch(item.Title)
		if m == nil {
			continue
		}

		date, err := time.Parse(sourceDateLayout, m[1])
		if err != nil {
			continue
		}
		main, err := parseNumberList(m[2])
		if err != nil || len(main) == 0 {
			continue
		}
		bonus, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}

		return model.Draw{Date: date, Main: main, Bonus: bonus}, nil
	}

	return model.Draw{}, fmt.Errorf("%w: no result title in RSS feed", common.ErrNoDrawsFound)
}
