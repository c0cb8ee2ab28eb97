package config

// SourceKind selects which parser reads a data source's payload.
type SourceKind string

const (
	// SourceRSS is the CT Lottery RSS feed format.
	SourceRSS SourceKind = "rss"
	// SourceIowaHTML is the Iowa Lottery results page markup.
	SourceIowaHTML SourceKind = "iowa_html"
	// SourceCSV is the NY Open Data CSV export.
	SourceCSV SourceKind = "csv"
	// SourceBallHTML is lotto.net-style markup with c-ball elements.
	SourceBallHTML SourceKind = "html"
)

// Source is one place a lottery's draws can be fetched from.
type Source struct {
	Name string
	URL  string
	Kind SourceKind
}

// SourceSet pairs a lottery's primary source with its fallback.
type SourceSet struct {
	Primary   Source
	Secondary Source
}

// DefaultSources maps each lottery to its fetch locations. Primaries
// are the official or state-run feeds; secondaries are independent
// result aggregators used when a primary is down.
func DefaultSources() map[string]SourceSet {
	return map[string]SourceSet{
		"l4l": {
			Primary: Source{
				Name: "CT Lottery RSS",
				URL:  "https://www.ctlottery.org/Modules/Games/RSS.aspx?game=Lucky4Life",
				Kind: SourceRSS,
			},
			Secondary: Source{
				Name: "lotto.net",
				URL:  "https://www.lotto.net/lucky-for-life/results",
				Kind: SourceBallHTML,
			},
		},
		"la": {
			Primary: Source{
				Name: "Iowa Lottery",
				URL:  "https://ialottery.com/LottoAmerica",
				Kind: SourceIowaHTML,
			},
			Secondary: Source{
				Name: "lotto.net",
				URL:  "https://www.lotto.net/lotto-america/results",
				Kind: SourceBallHTML,
			},
		},
		"pb": {
			Primary: Source{
				Name: "CT Lottery RSS",
				URL:  "https://www.ctlottery.org/Modules/Games/RSS.aspx?game=Powerball",
				Kind: SourceRSS,
			},
			Secondary: Source{
				Name: "Iowa Lottery",
				URL:  "https://ialottery.com/Powerball",
				Kind: SourceIowaHTML,
			},
		},
		"mm": {
			Primary: Source{
				Name: "NY Open Data",
				URL:  "https://data.ny.gov/api/views/5xaw-6ayf/rows.csv?accessType=DOWNLOAD",
				Kind: SourceCSV,
			},
			Secondary: Source{
				Name: "Iowa Lottery",
				URL:  "https://ialottery.com/MegaMillions",
				Kind: SourceIowaHTML,
			},
		},
	}
}

// JackpotSource describes how a lottery's advertised jackpot is
// obtained: scraped from a page, or fixed by the game's prize
// structure when the jackpot never rolls.
type JackpotSource struct {
	Name      string
	URL       string // empty when the prize is fixed
	Amount    int64  // advertised value for fixed prizes
	CashValue int64
}

// Scraped reports whether the jackpot comes from a live page.
func (j JackpotSource) Scraped() bool { return j.URL != "" }

// DefaultJackpotSources maps each lottery to its jackpot source.
// Lucky for Life pays a fixed annuity, and Lotto America's jackpot
// moves slowly enough that a typical value stands in for it.
func DefaultJackpotSources() map[string]JackpotSource {
	return map[string]JackpotSource{
		"pb": {
			Name: "CT Lottery RSS",
			URL:  "https://www.ctlottery.org/Modules/Games/RSS.aspx?game=Powerball",
		},
		"mm": {
			Name: "Mega Millions CMS",
			URL:  "https://www.megamillions.com/cmspages/jackpothome.aspx",
		},
		"l4l": {
			Name:      "fixed prize",
			Amount:    7_000_000,
			CashValue: 5_750_000,
		},
		"la": {
			Name:      "typical value",
			Amount:    2_000_000,
			CashValue: 1_200_000,
		},
	}
}
